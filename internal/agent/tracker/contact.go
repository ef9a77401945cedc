package tracker

import (
	"regexp"
	"strconv"
)

// ContactFragments are contact details spotted in free text. Age is zero when
// none was found.
type ContactFragments struct {
	Phone string
	Age   int
}

// ContactExtractor pulls contact fragments out of a message.
type ContactExtractor interface {
	Extract(text string) ContactFragments
}

// RegexExtractor finds phone numbers by trying patterns in order and takes the
// first bare two-digit number in [16,99] outside the phone match as an age.
// The age rule misfires on unrelated numbers such as shoe sizes.
type RegexExtractor struct {
	phone []*regexp.Regexp
	age   *regexp.Regexp
}

func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{
		phone: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
			regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.]?\d{4}`),
			regexp.MustCompile(`\+1\s?\d{3}[-.]?\d{3}[-.]?\d{4}`),
			regexp.MustCompile(`(?:\+212|\b0)[\s.-]?[5-7](?:[\s.-]?\d{2}){4}\b`),
		},
		age: regexp.MustCompile(`\b(1[6-9]|[2-9]\d)\b`),
	}
}

func (r *RegexExtractor) Extract(text string) ContactFragments {
	var f ContactFragments
	rest := text
	for _, re := range r.phone {
		if loc := re.FindStringIndex(text); loc != nil {
			f.Phone = text[loc[0]:loc[1]]
			rest = text[:loc[0]] + " " + text[loc[1]:]
			break
		}
	}
	if m := r.age.FindStringSubmatch(rest); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil && age >= 16 && age <= 99 {
			f.Age = age
		}
	}
	return f
}
