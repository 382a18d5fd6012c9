package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/pakincht-bit/SmashX-2.0/app"
	"github.com/pakincht-bit/SmashX-2.0/constants"
	"github.com/pakincht-bit/SmashX-2.0/health"
)

func main() {
	// 로컬 개발용 .env 로드 (없으면 무시)
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	application, err := app.New()
	if err != nil {
		log.Fatal(err)
	}

	// Railway 헬스체크를 위한 HTTP 서버 시작
	port := os.Getenv("PORT")
	if port == "" {
		port = constants.DefaultHTTPPort
	}
	health.StartHealthServer(port, application.StorageCheck)

	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
