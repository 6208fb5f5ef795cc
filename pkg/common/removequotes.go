package common

func RemoveSingleQuotesIfAny(caption string) string {
	// Sometimes, users wrap the caption in quotes, as "'a red circle'", which then leaks into the prompt.
	if len(caption) > 2 && caption[0] == '\'' && caption[len(caption)-1] == '\'' {
		caption = caption[1 : len(caption)-1]
	}
	return caption
}

func RemoveDoubleQuotesIfAny(caption string) string {
	// Sometimes, users wrap the caption in quotes, as "\"a red circle\"", which then leaks into the prompt.
	if len(caption) > 2 && caption[0] == '"' && caption[len(caption)-1] == '"' {
		caption = caption[1 : len(caption)-1]
	}
	return caption
}
