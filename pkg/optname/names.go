package optname

const (
	Config          = "config"
	ConnTimeout     = "connect-timeout"
	ConverterPython = "converter-python"
	Decompress      = "decompress"
	Force           = "force"
	Input           = "input"
	LoggingLevel    = "log-level"
	MaxSize         = "max-size"
	ModelsDir       = "models-dir"
	Opset           = "opset"
	Output          = "output"
	Placeholder     = "placeholder"
	Verbose         = "verbose"
)
