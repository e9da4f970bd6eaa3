package kitsu

import (
	"github.com/nero-extensions/kitsu/internal/dialer"
)

type Dialer = dialer.Dialer
type CoreDialer = dialer.CoreDialer
