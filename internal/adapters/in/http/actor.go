package http

import (
	"livestock/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ActorHeader names the caller on whose behalf a command runs. Authentication
// happens upstream; the header is trusted as given.
const ActorHeader = "X-Actor"

func actorOf(c echo.Context) (kernel.Actor, error) {
	return kernel.NewActor(c.Request().Header.Get(ActorHeader))
}
