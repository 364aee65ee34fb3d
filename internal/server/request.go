package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/piwi3910/TilePlan/internal/export"
	"github.com/piwi3910/TilePlan/internal/model"
)

// drawRequest is the body of POST /api/draw. Pointer fields tell a missing
// value from a zero one.
type drawRequest struct {
	Scheme  *string      `json:"scheme"`
	Name    string       `json:"name"`
	Tile    *tileRequest `json:"tile"`
	Width   *float64     `json:"width"`
	Length  *float64     `json:"length"`
	Options drawOptions  `json:"options"`
	Format  string       `json:"format"`
	Price   *float64     `json:"price_per_tile"`
	Waste   *float64     `json:"waste_percent"`
	Grout   string       `json:"grout_formula"`
}

type tileRequest struct {
	Width     *float64 `json:"width"`
	Length    *float64 `json:"length"`
	Delimiter *float64 `json:"delimiter"`
}

type drawOptions struct {
	Method *int        `json:"method"`
	Height *float64    `json:"height"`
	Door   *model.Door `json:"door"`
}

// drawResponse is returned for a successful draw.
type drawResponse struct {
	OK       bool                   `json:"ok"`
	URL      string                 `json:"url"`
	Format   export.Format          `json:"format"`
	Tiles    int                    `json:"tiles"`
	Estimate model.MaterialEstimate `json:"estimate"`
}

// apiError is an error with the HTTP status it maps to.
type apiError struct {
	Code    int
	Message string
}

func (e *apiError) Error() string { return e.Message }

func badRequest(format string, args ...any) *apiError {
	return &apiError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func required(name string) *apiError {
	return badRequest("Required argument: %s", name)
}

// toProject validates the request and turns it into a project laid over
// defaults. The room length runs along X: floors are length×width and walls
// unroll as length, width, length, width.
func (r drawRequest) toProject(defaults model.Project) (model.Project, export.Format, error) {
	p := defaults

	if r.Scheme == nil {
		return p, "", required("scheme")
	}
	scheme := model.Scheme(*r.Scheme)
	if scheme != model.SchemeFloor && scheme != model.SchemeWalls {
		return p, "", badRequest("Invalid scheme (%s), expected: %s", *r.Scheme, schemeList())
	}
	p.Scheme = scheme

	if r.Tile == nil {
		return p, "", required("tile")
	}
	switch {
	case r.Tile.Width == nil:
		return p, "", required("tile.width")
	case r.Tile.Length == nil:
		return p, "", required("tile.length")
	case r.Tile.Delimiter == nil:
		return p, "", required("tile.delimiter")
	case r.Width == nil:
		return p, "", required("width")
	case r.Length == nil:
		return p, "", required("length")
	}
	p.Tile = model.NewTileOptions(*r.Tile.Width, *r.Tile.Length, *r.Tile.Delimiter)

	switch scheme {
	case model.SchemeFloor:
		if r.Options.Method == nil {
			return p, "", required("options.method")
		}
		method := model.LayingMethod(*r.Options.Method)
		if !method.Valid() {
			return p, "", badRequest("Invalid floor laying method (%d), expected: %s", *r.Options.Method, methodList())
		}
		p.Method = method
		p.Floor = model.Size{Width: *r.Length, Height: *r.Width}
	case model.SchemeWalls:
		if r.Options.Height == nil {
			return p, "", required("options.height")
		}
		p.Walls = model.RoomWalls(*r.Length, *r.Width, *r.Options.Height, r.Options.Door)
	}

	if r.Name != "" {
		p.Name = r.Name
	}
	if r.Price != nil {
		p.PricePerTile = *r.Price
	}
	if r.Waste != nil {
		p.WastePercent = *r.Waste
	}
	if r.Grout != "" {
		formula := model.GroutFormula(r.Grout)
		if formula != model.GroutBetweenTiles && formula != model.GroutLegacy {
			return p, "", badRequest("Invalid grout formula (%s), expected: %s,%s", r.Grout, model.GroutBetweenTiles, model.GroutLegacy)
		}
		p.GroutFormula = formula
	}

	format, err := export.ParseFormat(r.Format)
	if err != nil {
		return p, "", badRequest("Invalid format (%s), expected: %s", r.Format, formatList())
	}
	return p, format, nil
}

func schemeList() string {
	names := make([]string, len(model.Schemes))
	for i, s := range model.Schemes {
		names[i] = string(s)
	}
	return strings.Join(names, ",")
}

func methodList() string {
	codes := make([]string, len(model.LayingMethods))
	for i, m := range model.LayingMethods {
		codes[i] = fmt.Sprint(int(m))
	}
	return strings.Join(codes, ",")
}

func formatList() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}
