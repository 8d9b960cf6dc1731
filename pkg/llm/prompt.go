package llm

import (
	"fmt"
	"strings"

	"stancewatch/internal/model"
)

const (
	replyPositive = "θετική"
	replyNegative = "αρνητική"
	replyNeutral  = "ουδέτερη"
)

const refereeSystemPrompt = "Είσαι ένας βοηθός ανάλυσης κειμένου για ελληνικά κείμενα. " +
	"Θέλω να αναλύσεις το παρακάτω απόσπασμα και να προσδιορίσεις " +
	"αν η στάση του κειμένου απέναντι στη διαιτησία " +
	"είναι θετική (επαινετική/υποστηρικτική), αρνητική (επικριτική/αμφισβητεί), " +
	"ή ουδέτερη (αντικειμενική/περιγραφική). " +
	"Αν δεν υπάρχει αναφορά στη διαιτησία, απαντήσε με 'ουδέτερη'. " +
	"Στη συνέχεια, εξήγησε σε μία σύντομη παράγραφο γιατί κατέληξες σε αυτό το συμπέρασμα."

const clubSystemPrompt = "Είσαι ένας βοηθός ανάλυσης κειμένου για ελληνικά κείμενα. " +
	"Θέλω να αναλύσεις το παρακάτω απόσπασμα και να προσδιορίσεις " +
	"αν η στάση του κειμένου απέναντι στην ομάδα %s " +
	"είναι θετική, αρνητική, ή ουδέτερη. " +
	"Στη συνέχεια, εξήγησε σε μία σύντομη παράγραφο γιατί κατέληξες σε αυτό το συμπέρασμα."

const userPromptTemplate = "Απόσπασμα:\n%s\n\n" +
	"Απάντησε ΜΟΝΟ με μία από τις λέξεις 'θετική', 'αρνητική' ή 'ουδέτερη' στην πρώτη γραμμή, " +
	"και μετά σε νέα γραμμή δώσε μια σύντομη εξήγηση για τη συλλογιστική σου."

const (
	maxReplyTokens = 200
)

func systemPrompt(input StanceInput) string {
	if input.TargetType == model.TargetTypeReferee {
		return refereeSystemPrompt
	}
	return fmt.Sprintf(clubSystemPrompt, input.Target)
}

func userPrompt(input StanceInput) string {
	return fmt.Sprintf(userPromptTemplate, input.Text)
}

// parseStanceReply splits a reply into its first line (the stance word) and the
// rest (the justification). Unknown stance words count as neutral.
func parseStanceReply(reply string) (string, string) {
	reply = cleanReply(reply)
	first, rest, _ := strings.Cut(reply, "\n")
	return normalizeStance(first), strings.TrimSpace(rest)
}

func normalizeStance(word string) string {
	word = strings.ToLower(strings.Trim(word, " \t\r.,:;!'\"*"))
	switch word {
	case replyPositive, model.StancePositive:
		return model.StancePositive
	case replyNegative, model.StanceNegative:
		return model.StanceNegative
	}
	return model.StanceNeutral
}

func cleanReply(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```text")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
