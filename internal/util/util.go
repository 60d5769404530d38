package util

import "strings"

// ArticleFor returns "a" or "an" depending on whether the next word starts
// with a vowel letter (a, e, i, o, u in either case). upper capitalizes the
// article.
func ArticleFor(next string, upper bool) string {
	article := "a"
	if len(next) > 0 {
		switch next[0] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			article = "an"
		}
	}
	if upper {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}

// MakeTextList gives a nice list of things based on their display name.
//
// TODO: turn this into a generic function that accepts displayable OR ~string
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	output := ""

	if len(items) == 1 {
		output += items[0]
	} else if len(items) == 2 {
		output += items[0] + " and " + items[1]
	} else {
		// if its more than two, use an oxford comma
		items[len(items)-1] = "and " + items[len(items)-1]
		output += strings.Join(items, ", ")
	}

	return output
}
