package session

import "encoding/gob"

// Flash classes understood by the bundled layouts.
const (
	FlashError   = "error"
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
)

// Stock flash messages.
const (
	MsgBadInput  = "Please double check the form and try again."
	MsgDenied    = "You do not have access to that page."
	MsgGeneric   = "Something went wrong on our end."
	MsgContactUs = MsgGeneric + " Reach us at %s if it keeps happening."
)

// A Flash is a message displayed to a visitor exactly once.
type Flash struct {
	Class string `json:"class"`
	Msg   string `json:"msg"`
}

func init() { gob.Register(Flash{}) }
