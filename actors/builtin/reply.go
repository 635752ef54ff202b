package builtin

// ReplyParams carries the result of a message that was sent with a reply request.
// The host delivers it to the requester's MethodReply, from the System actor.
type ReplyParams struct {
	// Correlation id chosen by the requester when it sent the message.
	ID uint64
	// Serialized return value of the completed message.
	Return []byte
}
