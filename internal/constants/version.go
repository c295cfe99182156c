package constants

// Version и CommitHash заполняются при сборке через ldflags:
//
//	go build -ldflags "-X github.com/MattGal/slngen/internal/constants.Version=1.2.3 \
//	                   -X github.com/MattGal/slngen/internal/constants.CommitHash=abc1234"
//
// При локальной сборке остаются значения по умолчанию.
var (
	// Version — версия приложения.
	Version = "dev"

	// CommitHash — хеш коммита на момент сборки.
	CommitHash = "unknown"
)
