package messages

// AdminCommand is a console line such as "reload", "list" or "give rock 4".
// Token must match the server's admin token.
type AdminCommand struct {
	Token string
	Line  string
}

// AdminReply answers one AdminCommand.
type AdminReply struct {
	Lines []string
	Error string
}
