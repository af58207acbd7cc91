package catalog

import "context"

// Confirmed is a Confirmer with a fixed answer, used when the user already
// confirmed out of band (a --yes flag, a confirm=true query).
type Confirmed bool

func (c Confirmed) Confirm(context.Context, string) bool { return bool(c) }
