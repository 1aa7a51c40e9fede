package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"pressfix/region"
)

// SessionCookie identifies one browser session so every tab resolves the
// same region store.
const SessionCookie = "pressfix_session"

const cookieMaxAge = 365 * 24 * 60 * 60

// RegionController exposes the session's region: read, explicit selection,
// and a websocket feed that pushes every change so open tabs converge
// without a reload.
type RegionController struct {
	Registry *region.Registry
	Logger   *log.Logger
}

func NewRegionController(registry *region.Registry, logger *log.Logger) *RegionController {
	return &RegionController{Registry: registry, Logger: logger}
}

func (rc *RegionController) sessionStore(c *fiber.Ctx) *region.Store {
	sid := c.Cookies(SessionCookie)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    sid,
			MaxAge:   cookieMaxAge,
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}

	// The cookie is the durable client-side copy; it seeds the server-side
	// store the first time this session shows up.
	storage := region.NewMemoryStorage()
	if v := c.Cookies(region.StorageKey); v != "" {
		_ = storage.Set(region.StorageKey, v)
	}
	return rc.Registry.Get(sid, c.Hostname(), storage)
}

type regionView struct {
	Region  string                `json:"region"`
	Ready   bool                  `json:"ready"`
	Contact region.SupportContact `json:"contact"`
}

func viewOf(r region.Region, ready bool) regionView {
	return regionView{Region: r.String(), Ready: ready, Contact: region.Resolve(r)}
}

// GetRegion handles GET /api/v1/region.
func (rc *RegionController) GetRegion(c *fiber.Ctx) error {
	store := rc.sessionStore(c)
	r, ready := store.Region()
	return c.JSON(viewOf(r, ready))
}

// SetRegion handles PUT /api/v1/region. Unrecognized values fall back to
// the unspecified region rather than erroring, matching the store's
// silent-ignore policy for anything outside the enumeration.
func (rc *RegionController) SetRegion(c *fiber.Ctx) error {
	var input struct {
		Region string `json:"region"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":    false,
			"error": "Invalid request.",
		})
	}

	store := rc.sessionStore(c)
	r := region.Parse(input.Region)
	store.SetRegion(r)

	c.Cookie(&fiber.Cookie{
		Name:     region.StorageKey,
		Value:    r.String(),
		MaxAge:   cookieMaxAge,
		SameSite: "Lax",
	})

	current, ready := store.Region()
	return c.JSON(viewOf(current, ready))
}

// RegionFeed streams the current region and every subsequent change over a
// websocket, one JSON frame per value.
func (rc *RegionController) RegionFeed(conn *websocket.Conn) {
	defer conn.Close()

	sid := conn.Cookies(SessionCookie)
	if sid == "" {
		_ = conn.WriteJSON(fiber.Map{"error": "no session"})
		return
	}

	storage := region.NewMemoryStorage()
	if v := conn.Cookies(region.StorageKey); v != "" {
		_ = storage.Set(region.StorageKey, v)
	}
	store := rc.Registry.Get(sid, "", storage)

	r, ready := store.Region()
	if err := conn.WriteJSON(viewOf(r, ready)); err != nil {
		return
	}

	updates, cancel := store.Subscribe()
	defer cancel()

	// Reader goroutine only detects the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case r, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(viewOf(r, true)); err != nil {
				rc.Logger.Printf("region feed write failed: %v", err)
				return
			}
		}
	}
}
