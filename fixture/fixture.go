// Package fixture serves a stub implementation of the wisdom navigation
// shell's DOM contract, so the harness can be developed and tested without
// the real server.
package fixture

import (
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Server struct {
	app  *fiber.App
	addr string
}

func NewServer(host string, port int) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/ws/")
	})
	// Every workspace route serves the same shell; the scripts only care
	// about shell state, not route content.
	app.Get("/ws/*", shellHandler)

	return &Server{
		app:  app,
		addr: fmt.Sprintf("%s:%d", host, port),
	}
}

func shellHandler(c *fiber.Ctx) error {
	logrus.Debugf("Fixture shell request: %s", c.Path())
	c.Type("html")
	return c.SendString(ShellPage)
}

// App exposes the fiber app for in-process request tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	logrus.Info("Fixture shell listening on ", s.addr)
	return s.app.Listen(s.addr)
}

// Serve runs the fixture on an existing listener, letting callers bind an
// ephemeral port.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
