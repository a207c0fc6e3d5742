package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=3000"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	UploadDir         string        `env:"UPLOAD_DIR,default=uploads"`
	ReapInterval      time.Duration `env:"REAP_INTERVAL,default=5m"`
	RoomIdleThreshold time.Duration `env:"ROOM_IDLE_THRESHOLD,default=10m"`
	CharReplacement   string        `env:"CHARACTER_REPLACEMENT,default=*"`
}

// CharacterRune rejects multi-character replacement settings early, at boot.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
