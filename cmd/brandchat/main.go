package main

import (
	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func main() {
	Execute()
}
