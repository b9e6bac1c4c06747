package stringsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

func Percent(num, total, decimals int) string {
	value := 0.0

	if total != 0 {
		value = float64(num) / float64(total) * float64(100)
	}

	return fmt.Sprintf("%."+strconv.Itoa(decimals)+"f%%", value)
}

func PercentExplained(num, total, decimals int) string {
	return fmt.Sprintf("%d/%d=%s", num, total, Percent(num, total, decimals))
}

// SplitTrim splits comma-separated list skipping blank items.
func SplitTrim(value string, sep string) []string {
	var result []string
	for _, part := range strings.Split(value, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func SnakeCase(value string) string {
	return strcase.ToSnake(value)
}
