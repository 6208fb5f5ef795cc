package domain

type CleanOptions struct {
	Prompt   string
	Response string
}

// ResponseCleaner Sometimes, the model can generate too much (for example, trying to start a second document),
// so we trim it. The cleaner can also have additional post-processing specific to the model.
type ResponseCleaner interface {
	CleanResponse(options CleanOptions) string
}
