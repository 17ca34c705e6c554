package repository

import "strings"

// Combine joins root and file. The separator is a backslash when either operand already
// contains one, a slash otherwise; none is inserted when root is empty or already ends with it.
func Combine(root, file string) string {
	separator := "/"
	if strings.Contains(root, `\`) || strings.Contains(file, `\`) {
		separator = `\`
	}
	if root == "" || strings.HasSuffix(root, separator) {
		return root + file
	}
	return root + separator + file
}
