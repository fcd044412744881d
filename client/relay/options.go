package relay

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mokiat/gog/opt"
)

const DefaultReloadKey = "r"

// Options configure a Program.
type Options struct {
	// Continuous redraws every animation frame instead of only after an invalidation.
	Continuous bool
	// ReloadKey is the KeyboardEvent.key that reloads the shaders.
	ReloadKey string
	// PixelRatio overrides window.devicePixelRatio when specified.
	PixelRatio opt.T[float64]
	// ReloadInterval is the minimum time between shader reloads. Zero disables throttling.
	ReloadInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.ReloadKey == "" {
		o.ReloadKey = DefaultReloadKey
	}
	return o
}

// ParseOptions reads Options from a URL query string, e.g. location.search.
//
//	continuous=1&reload_key=F5&dpr=2&reload_interval=500ms
func ParseOptions(query string) (Options, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return Options{}, fmt.Errorf("parsing query: %v", err)
	}

	var o Options
	if v := values.Get("continuous"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Options{}, fmt.Errorf("continuous: %v", err)
		}
		o.Continuous = b
	}
	o.ReloadKey = values.Get("reload_key")
	if v := values.Get("dpr"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Options{}, fmt.Errorf("dpr: %v", err)
		}
		if f <= 0 {
			return Options{}, fmt.Errorf("dpr: must be positive, got %v", f)
		}
		o.PixelRatio = opt.V(f)
	}
	if v := values.Get("reload_interval"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Options{}, fmt.Errorf("reload_interval: %v", err)
		}
		if d < 0 {
			return Options{}, fmt.Errorf("reload_interval: must not be negative, got %v", d)
		}
		o.ReloadInterval = d
	}
	return o.withDefaults(), nil
}

// OptionsFromQuery is ParseOptions that falls back to the defaults when the
// query is malformed.
func OptionsFromQuery(query string) Options {
	o, err := ParseOptions(query)
	if err != nil {
		log.Printf("ignoring page options: %v", err)
		return Options{}.withDefaults()
	}
	return o
}
