package service

import "errors"

// ErrUnprocessableEvent событие нельзя применить, повторная доставка не поможет
var ErrUnprocessableEvent = errors.New("unprocessable inventory event")
