package fx

import (
	"go.uber.org/fx"

	httpFX "github.com/sp3dr4/xlu/internal/fx/http"
)

// HTTPServerModules is everything cmd/server needs: the core graph plus the
// HTTP adapter and its server lifecycle
var HTTPServerModules = fx.Options(
	CoreModules,
	httpFX.HTTPModule,
	httpFX.HTTPLifecycleModule,
)
