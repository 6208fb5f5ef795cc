package common

// IsStringInSlice reports whether `str` occurs in `slice`.
func IsStringInSlice(str string, slice []string) bool {
	for _, candidate := range slice {
		if str == candidate {
			return true
		}
	}
	return false
}
