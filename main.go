package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/voice-bridge/config"
	"github.com/mrsingh-rishi/voice-bridge/llm"
	"github.com/mrsingh-rishi/voice-bridge/pipeline"
	"github.com/mrsingh-rishi/voice-bridge/server"
	"github.com/mrsingh-rishi/voice-bridge/store"
	"github.com/mrsingh-rishi/voice-bridge/stt"
	"github.com/mrsingh-rishi/voice-bridge/tts"
)

// publicPrefix is where generated audio is reachable; it must match the
// static mount below.
const publicPrefix = "/static/output"

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	client := openai.NewClient(cfg.OpenAIAPIKey)

	whisper, err := stt.NewWhisperClient(client)
	if err != nil {
		log.Fatal(err)
	}
	chat, err := llm.NewOpenAIClient(client, cfg.ChatModel)
	if err != nil {
		log.Fatal(err)
	}

	var synth pipeline.Synthesizer
	switch cfg.TTSProvider {
	case config.TTSProviderElevenLabs:
		synth, err = tts.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoice, cfg.OutputDir, publicPrefix)
	default:
		synth, err = tts.NewOpenAIClient(client, cfg.TTSVoice, cfg.OutputDir, publicPrefix)
	}
	if err != nil {
		log.Fatal(err)
	}

	files := store.New()
	talk, err := pipeline.New(files, whisper, chat, synth)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.AudioTTL > 0 {
		janitor := tts.NewJanitor(cfg.OutputDir, cfg.AudioTTL)
		janitor.Start()
		defer janitor.Stop()
		log.Printf("Pruning generated audio older than %s", cfg.AudioTTL)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	// Browser recorder clients may live anywhere, mirror the permissive
	// CORS setup of the original deployment.
	app.Use(cors.New())

	app.Static("/static", cfg.StaticDir)

	server.RegisterRoutes(app, server.Dependencies{
		Files: files,
		STT:   whisper,
		LLM:   chat,
		TTS:   synth,
		Talk:  talk,
	})

	addr := ":" + cfg.Port
	log.Printf("Voice bridge backend listening on %s", addr)
	log.Fatal(app.Listen(addr))
}
