package lotsizing

import (
	"fmt"
	"regexp"
	"strconv"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

func Print2DArray(a [][]int) string {
	res := ""
	for _, x := range a {
		for _, y := range x {
			res += fmt.Sprintf("%d,", y)
		}
		res += fmt.Sprintln("")
	}
	return res
}

var (
	jsonNumbers  = regexp.MustCompile(`\s*([-]?[0-9]+(\.[0-9]+)?),\s+([-]?[0-9]+(\.[0-9]+)?)(,)?`)
	jsonBrackets = regexp.MustCompile(`\[(([-]?[0-9]+(\.[0-9]+)?,)+[-]?[0-9]+(\.[0-9]+)?)\s+\](,?)(\s+)`)
	jsonSingle   = regexp.MustCompile(`\[\s+([-]?[0-9]+(\.[0-9]+)?)\s+\]`)
)

// SanitizeJsonArrayLineBreaks puts arrays of numbers produced by json.MarshalIndent onto a single line.
func SanitizeJsonArrayLineBreaks(json string) string {
	res := json
	for jsonNumbers.MatchString(res) {
		res = jsonNumbers.ReplaceAllString(res, "$1,$3$5")
	}
	for jsonBrackets.MatchString(res) {
		res = jsonBrackets.ReplaceAllString(res, "[$1]$5$6")
	}
	res = jsonSingle.ReplaceAllString(res, "[$1]")
	return res
}
