package main

const (
	DefaultConfigPath   = ""
	DefaultDebugToggle  = false
	DefaultLogFilePath  = ""
	DefaultSentences    = 5
	DefaultFormat       = formatTable
	DefaultServerAddr   = "localhost:7070"
	DefaultHistory      = 100
	DefaultDotEnvPath   = ".env"
	DefaultSchemaTarget = "config"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatCSV   outputFormat = "csv"
)

func (f outputFormat) valid() bool {
	switch f {
	case formatTable, formatJSON, formatCSV:
		return true
	default:
		return false
	}
}
