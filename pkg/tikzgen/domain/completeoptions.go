package domain

// TokenFunc is invoked for every piece of output as soon as the model emits it, which allows frontends
// to show progress long before the full document is finished.
type TokenFunc func(token string)

var DefaultCompleteOptions = CompleteOptions{}

type CompleteOptions struct {
	// Temperature specifies how creative the output is
	Temperature float64
	// MaxTokens caps the length of the completion (0 means the backend's default)
	MaxTokens int
	// OnToken is an optional streaming callback (may be nil)
	OnToken TokenFunc
}

func (c CompleteOptions) WithTemperature(value float64) CompleteOptions {
	c.Temperature = value
	return c
}

func (c CompleteOptions) WithMaxTokens(value int) CompleteOptions {
	c.MaxTokens = value
	return c
}

func (c CompleteOptions) WithOnToken(value TokenFunc) CompleteOptions {
	c.OnToken = value
	return c
}

func (c CompleteOptions) TemperatureOrDefault(defaultValue float64) float64 {
	if c.Temperature == 0.0 {
		return defaultValue
	}
	return c.Temperature
}
