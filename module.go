package snowfall

type Module interface {
	Install(app *App, cmd *Commands)
}
