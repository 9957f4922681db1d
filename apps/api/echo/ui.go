package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// dashboardShell is the page the dashboard app mounts into.
const dashboardShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Masomo Dashboard</title>
</head>
<body>
  <div id="root"></div>
</body>
</html>
`

func dashboardPage(ctx echo.Context) error {
	return ctx.HTML(http.StatusOK, dashboardShell)
}
