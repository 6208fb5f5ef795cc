package domain

// A list of built-in config keys supported by the generation core (i.e. settings of concrete backends are not included).

const (
	// ConfigKeyModelName the released checkpoint to generate with, for example "llama-7b" or "clima-13b"
	ConfigKeyModelName = "modelName"
	// ConfigKeyLogPath file path where to save the logs
	ConfigKeyLogPath = "logPath"
	// ConfigKeyGenerateRetryCount how many candidates we should sample from the model before we finally
	// give up and return an error. A candidate can be rejected because it's empty, unsafe, or fails to compile.
	ConfigKeyGenerateRetryCount = "generateRetryCount"
	// ConfigKeyGenerateTemperature the sampling temperature used for the first candidate
	ConfigKeyGenerateTemperature = "generateTemperature"
	// ConfigKeyGenerateTemperatureStep each rejected candidate bumps the temperature by this value, so that
	// resampling doesn't keep producing the same broken code over and over again
	ConfigKeyGenerateTemperatureStep = "generateTemperatureStep"
	// ConfigKeyRasterSize the size (in pixels) of the longest side of rasterized images
	ConfigKeyRasterSize = "rasterSize"
)

// DefaultRasterSize matches the resolution the vision encoder of the multimodal variant was trained with,
// which makes side-by-side comparisons straightforward.
const DefaultRasterSize = 336
