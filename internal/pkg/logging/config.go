package logging

// Поддерживаемые форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Поддерживаемые уровни логирования.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Поддерживаемые типы вывода логов.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Значения по умолчанию для Config.
// Единый источник истины — используется в фабрике и в провайдере DI.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "/var/log/slngen.log"
	DefaultMaxSize    = 100 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
	DefaultCompress   = true
)

// Config содержит настройки логирования.
type Config struct {
	// Level — минимальный уровень записываемых сообщений (debug/info/warn/error).
	Level string

	// Format — формат записей (json/text).
	Format string

	// Output — куда писать логи (stderr/file).
	Output string

	// FilePath — путь к файлу логов при Output == "file".
	FilePath string

	// MaxSize — максимальный размер файла логов в MB до ротации.
	MaxSize int

	// MaxBackups — количество хранимых backup-файлов.
	MaxBackups int

	// MaxAge — максимальный возраст backup-файлов в днях.
	MaxAge int

	// Compress — сжимать ли backup-файлы в gzip.
	Compress bool
}

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}
