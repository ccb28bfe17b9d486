package patterns

import "regexp"

// sentLineRe corroborates a legacy header block: a Sent:/Date:/To: style
// line shortly after the From: line.
var sentLineRe = regexp.MustCompile(`(?i)^\s*\*?(?:sent|date|datum|envoyé|enviado|inviato|verzonden|skickat|sendt|wysłano|lähetetty|to|an|à|para|aan|till|do|发送时间|收件人)\s*[:：]`)

// NewLibrary compiles the full pattern catalog. New languages are added by
// appending entries; order inside the reply set is not priority-sensitive
// (any match is acceptable), but reply and forward sets must stay distinct
// because the transformer treats forward boundaries specially.
func NewLibrary() *Library {
	return &Library{
		reply: []Entry{
			{Lang: "en", Convention: "on-wrote",
				Line: regexp.MustCompile(`(?i)^\s*on\s.{1,998}\bwrote\s*:`)},
			{Lang: "fr", Convention: "a-ecrit",
				Line: regexp.MustCompile(`(?i)^\s*le\s.{1,998}\sa\s+écrit\s*:`)},
			{Lang: "de", Convention: "schrieb",
				Line: regexp.MustCompile(`(?i)^\s*am\s.{1,998}\sschrieb\s.{0,200}:`)},
			{Lang: "es", Convention: "escribio",
				Line: regexp.MustCompile(`(?i)^\s*el\s.{1,998}\sescribió\s*:`)},
			{Lang: "it", Convention: "ha-scritto",
				Line: regexp.MustCompile(`(?i)^\s*il\s.{1,998}\sha\s+scritto\s*:`)},
			{Lang: "pt", Convention: "escreveu",
				Line: regexp.MustCompile(`(?i)^\s*em\s.{1,998}\sescreveu\s*:`)},
			{Lang: "nl", Convention: "schreef",
				Line: regexp.MustCompile(`(?i)^\s*op\s.{1,998}\bschreef\b.{0,200}:`)},
			{Lang: "pl", Convention: "napisal",
				Line: regexp.MustCompile(`(?i)^\s*(?:w\s+dniu|dnia)\s.{1,998}(?:napisał(?:a|\(a\))?|pisze)\s*.{0,200}:`)},
			{Lang: "sv", Convention: "skrev",
				Line: regexp.MustCompile(`(?i)^\s*den\s.{1,998}\sskrev\s.{0,200}:`)},
			{Lang: "fi", Convention: "kirjoitti",
				Line: regexp.MustCompile(`(?i)^\s*.{0,200}\bkirjoitti\b.{0,200}:\s*$`)},
			{Lang: "vi", Convention: "da-viet",
				Line: regexp.MustCompile(`(?i)^\s*vào\s.{1,998}\sđã\s+viết\s*:`)},
			{Lang: "zh-hans", Convention: "xiedao",
				Line: regexp.MustCompile(`^\s*在.{1,200}写道\s*[:：]`)},
			{Lang: "zh-hant", Convention: "xiedao",
				Line: regexp.MustCompile(`^\s*於.{1,200}寫道\s*[:：]`)},
			{Lang: "num", Convention: "iso-date-first", Dated: true,
				Line: regexp.MustCompile(`^\s*\d{4}-\d{1,2}-\d{1,2}\s+\d{1,2}:\d{2}\s.{1,500}:\s*$`)},
			{Lang: "num", Convention: "european-date-first", Dated: true,
				Line: regexp.MustCompile(`^\s*\d{1,2}\.\d{1,2}\.\d{2,4}\s.{1,500}:\s*$`)},
			{Lang: "num", Convention: "rfc2822-date-first", Dated: true,
				Line: regexp.MustCompile(`(?i)^\s*(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*,?\s+\d{1,2}\s+[a-z]{3,}\.?\s+\d{4}\s.{1,500}:\s*$`)},
			{Lang: "num", Convention: "time-first", Dated: true,
				Line: regexp.MustCompile(`(?i)^\s*(?:kl\.?|klo)?\s*\d{1,2}[:.]\d{2},?\s.{1,500}:\s*$`)},
			{Lang: "sep", Convention: "original-message",
				Line: regexp.MustCompile(`(?i)^\s*-{2,}\s*(?:original\s+message|ursprüngliche\s+nachricht|oorspronkelijk\s+bericht|message\s+d'origine|mensaje\s+original|messaggio\s+originale|mensagem\s+original|originalmeddelande|alkuperäinen\s+viesti|wiadomość\s+oryginalna)\s*-{2,}\s*$`)},
			{Lang: "sep", Convention: "header-block",
				Line:     regexp.MustCompile(`(?i)^\s*\*?(?:from|von|de|da|van|fra|från|od|lähettäjä|发件人|寄件者)\s*[:：]\s*\S`),
				Followup: sentLineRe},
			{Lang: "sep", Convention: "dashed",
				Line: regexp.MustCompile(`^\s*-{4,}\s*$`)},
			{Lang: "sep", Convention: "underscore",
				Line: regexp.MustCompile(`^\s*_{4,}\s*$`)},
		},
		forward: []Entry{
			{Lang: "en", Convention: "forwarded-message",
				Line: regexp.MustCompile(`(?i)^\s*-{2,}\s*forwarded\s+message\s*-{2,}`)},
			{Lang: "en", Convention: "begin-forwarded",
				Line: regexp.MustCompile(`(?i)^\s*begin\s+forwarded\s+message\s*:?`)},
			{Lang: "de", Convention: "weitergeleitet",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?(?:anfang\s+der\s+)?weitergeleitete[nr]?\s+nachricht`)},
			{Lang: "fr", Convention: "transfere",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?(?:message\s+transféré|début\s+du\s+message\s+(?:réexpédié|transféré))`)},
			{Lang: "es", Convention: "reenviado",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?mensaje\s+reenviado`)},
			{Lang: "it", Convention: "inoltrato",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?(?:inizio\s+)?messaggio\s+inoltrato`)},
			{Lang: "pt", Convention: "encaminhada",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?mensagem\s+encaminhada`)},
			{Lang: "nl", Convention: "doorgestuurd",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?doorgestuurd\s+bericht`)},
			{Lang: "pl", Convention: "przekazana",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?(?:wiadomość\s+przekazana|początek\s+przekazywanej\s+wiadomości)`)},
			{Lang: "sv", Convention: "vidarebefordrat",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?(?:vidarebefordrat\s+meddelande|videresendt\s+(?:besked|meddelelse))`)},
			{Lang: "fi", Convention: "valitetty",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?(?:välitetty|edelleenlähetetty)\s+viesti`)},
			{Lang: "vi", Convention: "chuyen-tiep",
				Line: regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?(?:bắt\s+đầu\s+)?thư\s+được\s+chuyển\s+tiếp`)},
			{Lang: "zh-hans", Convention: "zhuanfa",
				Line: regexp.MustCompile(`^\s*-{0,}\s*转发的?邮件`)},
			{Lang: "zh-hant", Convention: "zhuanfa",
				Line: regexp.MustCompile(`^\s*-{0,}\s*轉寄的?郵件`)},
			{Lang: "en", Convention: "fwd-prefix",
				Line: regexp.MustCompile(`(?i)^\s*fwd?\s*:\s*\S`)},
		},
	}
}
