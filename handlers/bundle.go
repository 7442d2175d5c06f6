package handlers

// HandlerBundle groups the endpoint handlers wired in main.
type HandlerBundle struct {
	BookingHandler *BookingHandler
	AdminHandler   *AdminHandler
}
