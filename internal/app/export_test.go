package app

var (
	ByDepth  = byDepth
	Topmost  = topmost
	Populate = (*App).populate
)
