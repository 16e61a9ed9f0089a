package main

import "time"

type Config struct {
	Host            string        `env:"HOST,default=localhost"`
	Port            int           `env:"PORT,default=8080"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}
