package detect

import "regexp"

// Romanized marker lexicons. Each pattern captures a high-signal function
// word, pronoun or verb ending as it is commonly typed in Latin script.
// The generic_indic set holds markers shared across closely related
// languages and contributes half weight to both Marathi and Hindi scores.
//
// Precedence when several lexicons fire is Tamil, then Marathi, then Hindi,
// then generic. The ordering is empirical: Tamil's endings are the most
// distinctive, while Marathi and Hindi overlap heavily in romanized form.
// Reordering changes outcomes for ambiguous short text, so keep it stable
// unless re-tuned against a labelled corpus.
var romanizedPatterns = map[string][]*regexp.Regexp{
	"marathi": compileAll(
		`\b(ahe|ahes|aahe|aahes|ahet|ahot)\b`,
		`\b(khup|khoop|khupach)\b`,
		`\b(mhanje|mhanun|mhanoon|mhantoy)\b`,
		`\b(bolat|bolta|bolto|bolte|boltes)\b`,
		`\b(chukicha|chukla|chuk)\b`,
		`\b(bhet|bheta|bhetla|bheto)\b`,
		`\b(chup|choop|chupchap)\b`,
		`\b(tu|mi|me|mala|tula|tyala|tila|aapan|aamhi|tumhi)\b`,
		`\b(kashala|kasa|kase|kay|kuthay|kevha)\b`,
		`\b(sangu|sang|sanga|sangtoy)\b`,
		`\b(yenar|yeil|yete|yeto)\b`,
		`\b(ghari|ghara|gharun)\b`,
		`\b(kal|aaj|udya)\b`,
		`\b(thik|thiik|bara)\b`,
		`\b(nako|nakos)\b`,
		`\b(honar|hotay|hota|hoti|hoin|hoeil|hoel|hoil|hoeen|hoet)\b`,
		`\b(zala|zali|zale|zalya|jhala|jhali|jhale)\b`,
		`\b(pahije|paahije|pahijet|pahijela)\b`,
		`\b(aikla|aiklay|aiklas|aikle|aiku|aikun)\b`,
		`\b(la|var|madhye)\b`,
	),
	"hindi": compileAll(
		`\b(hai|hain|hoon|ho|hoga|hogi)\b`,
		`\b(bahut|bohot|bahoot|bahoth)\b`,
		`\b(kar|kara|karte|karti|karo|karenge)\b`,
		`\b(achha|accha|acha|achhe)\b`,
		`\b(chalo|chala|chale|chalte|chalenge)\b`,
		`\b(main|mein|mai|hum|tum|tumhe|tumhare)\b`,
		`\b(mujhe|mujhko|hamko|hamara)\b`,
		`\b(kya|kaise|kese|kyun|kyon|kab|kaha|kahan)\b`,
		`\b(yaar|yaara|yar|bhai|bhaiya)\b`,
		`\b(dekh|dekha|dekho|dekhte|dekhenge)\b`,
		`\b(bol|bola|bolo|bolte|bolenge)\b`,
		`\b(thik|theek|thiik)\b`,
		`\b(abhi|ab|phir|fir)\b`,
		`\b(jaana|jana|jao|jaate|jayenge|jaa)\b`,
		`\b(aana|ana|aao|aate|aayenge)\b`,
		`\b(ye|yeh|vo|voh|woh|yahi|wohi)\b`,
		`\b(mast|mazaa|maja|bindass|kamaal|zabardast)\b`,
	),
	"tamil": compileAll(
		`\b(naan|naa|nee|neengal|avan|aval|avar|avanga)\b`,
		`\b(ren|ran|raan|raal|raar|rom|ranga|raanga)\b`,
		`\b(tten|ten|then|ttu|chu|dhu|ttom|tanga|ttanga)\b`,
		`\b(ven|veen|ppen|ppom|vom|venga|ppanga|vaanga)\b`,
		`\b(pathukaren|paathukkaren|poi|poren|varen|pannuren|pannuven)\b`,
		`\b(mudichiduven|mudichidaren|mudichitten|theduren|thedi)\b`,
		`\b(irukku|irukkum|irundhuchu|pannu|panna|po|poga|vaa|vara)\b`,
		`\b(sollu|solla|paaru|paakka|kelu|saapidu)\b`,
		`\b(ippo|ippodhu|inniki|innaiku|naalai|nethu|appuram)\b`,
		`\b(romba|rombha|konjam|koncham|enna|yenna|epdi|eppadi)\b`,
		`\b(illa|illai|mudiyaathu|vendam|venda|aam|aama|seri)\b`,
		`\b(dhan|dhaan|than|thaan|nu|nnu|oda|kuda|kooda)\b`,
		`\b(lendhu|lerndhu|kku|ku|la|le|layum)\b`,
		`\b(enga|yeppodhu|yen|evlo|yaaru|yaar)\b`,
	),
	"generic_indic": compileAll(
		`\b(nahi|nahin|na|nai|nay)\b`,
		`\b(tha|thi|the|thee)\b`,
		`\b(ka|ki|ke|ko)\b`,
		`\b(se|sai|say)\b`,
		`\b(par|pe)\b`,
	),
}

// romanizedLexiconOrder fixes the evaluation order of the lexicons above.
var romanizedLexiconOrder = []string{"tamil", "marathi", "hindi", "generic_indic"}

// lexiconLang maps a lexicon name to the ISO 639-3 code it stands for.
var lexiconLang = map[string]string{
	"marathi":       "mar",
	"hindi":         "hin",
	"tamil":         "tam",
	"generic_indic": "hin",
}

// Strong markers are words distinctive enough that a single occurrence is
// near-conclusive for the language.
var (
	strongTamilMarkers = wordSet(
		"naan", "naa", "ren", "ven", "tten", "poi", "pathukaren",
		"mudichiduven", "irukku", "ippo", "ippodhu", "romba", "illa", "illai",
	)
	strongMarathiMarkers = wordSet(
		"kashala", "sangu", "ahe", "ahes", "aahe", "mhanje", "bhet", "nako",
	)
	strongHindiMarkers = wordSet(
		"hai", "hoon", "kya", "kaise", "yaar", "bahut", "mein",
	)
)

// English markers, tuned for social-media text. These deliberately favour
// fillers and discourse words over content words: a Hinglish post borrows
// "guys lets continue" long before it borrows rare vocabulary.
var englishMarkerPatterns = compileAll(
	`\b(guys|let|lets|with|continue|journey|really|actually|anyway|literally)\b`,
	`\b(okay|ok|yeah|yup|nope|sure|maybe|perhaps|btw|omg|lol|lmao)\b`,
	`\b(what|when|where|which|who|how|why|whose|whom)\b`,
	`\b(good|bad|nice|great|awesome|cool|must|watch|bro|dude|man)\b`,
	`\b(movie|shopping|market|office|traffic|late|tired|break|party|fun)\b`,
	`\b(love|like|want|need|got|get|going|doing|know|think|feel)\b`,
	`\b(just|very|too|so|totally|completely|absolutely)\b`,
	`\b(this|that|these|those|here|there|now|then|today|tomorrow)\b`,
)

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func countMatches(patterns []*regexp.Regexp, text string) (int, []string) {
	total := 0
	var matched []string
	for _, p := range patterns {
		hits := p.FindAllString(text, -1)
		if len(hits) > 0 {
			total += len(hits)
			matched = append(matched, hits...)
		}
	}
	return total, matched
}

func anyWordPresent(tokens []string, set map[string]struct{}) bool {
	for _, t := range tokens {
		if _, ok := set[trimTokenPunct(t)]; ok {
			return true
		}
	}
	return false
}
