package cards

import "errors"

var ErrUnknownCard = errors.New("card not in deck")
