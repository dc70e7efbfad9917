// Package server wires the voice bridge HTTP surface onto a Fiber app.
// Handlers are thin pass-throughs to the injected stage clients; the only
// deliberate local validation is the empty-text check on /api/tts.
package server

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mrsingh-rishi/voice-bridge/pipeline"
	"github.com/mrsingh-rishi/voice-bridge/types"
)

// Dependencies carries the collaborators each route needs. Everything is an
// interface so tests can substitute fakes.
type Dependencies struct {
	Files pipeline.FileStore
	STT   pipeline.Transcriber
	LLM   pipeline.ReplyGenerator
	TTS   pipeline.Synthesizer
	Talk  *pipeline.TalkPipeline
}

type textRequest struct {
	Text string `json:"text"`
}

func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/", handleRoot)
	app.Post("/api/transcribe", handleTranscribe(d))
	app.Post("/api/reply", handleReply(d))
	app.Post("/api/tts", handleTTS(d))
	app.Post("/api/talk", handleTalk(d))
}

func handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Voice bridge backend running 🎙️"})
}

func handleTranscribe(d Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, `missing form file "file"`)
		}
		src, err := fh.Open()
		if err != nil {
			return badRequest(c, "unreadable form file")
		}
		defer src.Close()

		path, err := d.Files.Store(src, filepath.Ext(fh.Filename))
		if err != nil {
			return errorResponse(c, err)
		}
		defer func() {
			if err := d.Files.Release(path); err != nil {
				log.Printf("release %s: %v", path, err)
			}
		}()

		transcript, err := d.STT.Transcribe(c.Context(), path)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"transcript": transcript})
	}
}

func handleReply(d Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req textRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON body")
		}

		// Empty text is deliberately passed through: the remote model's
		// answer for it is returned as-is.
		reply, err := d.LLM.GenerateReply(c.Context(), req.Text)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"bot_reply": reply})
	}
}

func handleTTS(d Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req textRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid JSON body")
		}
		if strings.TrimSpace(req.Text) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "Text cannot be empty.",
			})
		}

		audioURL, err := d.TTS.Synthesize(c.Context(), req.Text)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"audio_url": audioURL})
	}
}

func handleTalk(d Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, `missing form file "file"`)
		}
		src, err := fh.Open()
		if err != nil {
			return badRequest(c, "unreadable form file")
		}
		defer src.Close()

		res, err := d.Talk.Run(c.Context(), src, fh.Filename)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{
			"user_text": res.UserText,
			"bot_text":  res.BotText,
			"audio_url": res.AudioURL,
		})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": fiber.Map{"code": "bad_request", "message": msg},
	})
}

// errorResponse maps internal failures onto the stable error schema:
// upstream AI failures become 502 with the failing stage named, everything
// else a generic 500.
func errorResponse(c *fiber.Ctx, err error) error {
	var upstream *types.UpstreamError
	if errors.As(err, &upstream) {
		log.Printf("❌ %v", upstream)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "upstream_error",
				"message": fmt.Sprintf("%s stage failed", upstream.Stage),
			},
		})
	}
	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{"code": "internal_error", "message": "internal server error"},
	})
}
