package server

import (
	"bytes"
	"time"

	"gazette/feed"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type ServerConfig struct {

	// The title shown on the announcements page
	SiteTitle string

	// The loader used to read the feed document, once per page load
	Loader feed.Loader

	// Local data directory served under /data, empty when the data lives
	// on a remote host
	DataDir string
}

// Returns a fiber.App instance serving the announcements page and data files
func Server(config *ServerConfig) *fiber.App {

	app := fiber.New()

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.WithFields(log.Fields{
			"method":  c.Method(),
			"route":   c.Route().Path,
			"latency": time.Since(start),
		}).Info("Request")
		return err
	})

	app.Use(requestid.New(requestid.ConfigDefault))
	app.Use(compress.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// The announcements page. The document is loaded per page load, the
	// filter pipeline runs synchronously on the query parameters.
	app.Get("/", func(c *fiber.Ctx) error {
		query := c.Query("q", "")
		source := c.Query("source", "")

		var view feed.PageView

		doc, err := config.Loader.Load(c.Context())
		if err != nil {
			log.WithFields(log.Fields{
				"error": err,
			}).Error("Feed document load failed")
			view = feed.BuildErrorPage(config.SiteTitle, err)
		} else {
			index := feed.BuildIndex(doc.Items)
			visible := feed.Visible(doc, index, query, source)
			view = feed.BuildPage(config.SiteTitle, doc, visible, query, source)
		}

		var buf bytes.Buffer
		if err := feed.RenderPage(&buf, view); err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Error rendering page")
		}

		c.Set("Content-Type", fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	})

	// Serve the feed documents themselves, bypassing intermediary caches
	if config.DataDir != "" {
		app.Use("/data", func(c *fiber.Ctx) error {
			err := c.Next()
			c.Set("Cache-Control", "no-store")
			return err
		})
		app.Static("/data", config.DataDir)
	}

	return app
}
