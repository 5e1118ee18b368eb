package ports

// Display is the screen surface the controller renders into.
type Display interface {
	ShowDate(text string)
	ShowCurrencyOptions(options []string, inputIndex, outputIndex int)
	ShowResult(text string, visible bool)
	ShowLoading(loading bool)
	ShowError(message string, cancelable bool)
	HideError()
}

type Sharer interface {
	Share(title, text string) error
}
