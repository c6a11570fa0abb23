package wire

// Push type tags.
const (
	TypeContainerOpened         = "container_opened"
	TypeContainerUpdated        = "container_updated"
	TypeContainerActionResult   = "container_action_result"
	TypeContainerClosed         = "container_closed"
	TypeContainerContentsUpdate = "container_contents_update"
	TypeWorldListResult         = "world_list_result"
)

// Menu names the modal kind a container opens as. The container slot count
// comes from the Contents array length, not from the menu name.
type Menu string

const (
	MenuChest   Menu = "chest"
	MenuFurnace Menu = "furnace"
	MenuTrade   Menu = "trade"
)

// ContainerOpened carries the full initial state of a freshly opened
// container view.
type ContainerOpened struct {
	ContainerID     int64   `json:"containerId"`
	Menu            Menu    `json:"menu"`
	Contents        []*Slot `json:"contents"`
	PlayerInventory []*Slot `json:"playerInventory"`
	Hotbar          []*Slot `json:"hotbar"`
}

// ContainerUpdated is a dense-snapshot refresh of any subset of the open
// container's collections. Omitted collections are untouched. It carries no
// cursor field; the cursor is only replaced by pushes that include one.
type ContainerUpdated struct {
	ContainerID     int64   `json:"containerId"`
	Contents        []*Slot `json:"contents,omitempty"`
	PlayerInventory []*Slot `json:"playerInventory,omitempty"`
	Hotbar          []*Slot `json:"hotbar,omitempty"`
}

// ContainerActionResult is the authoritative answer to a click or
// quick-transfer. Sparse deltas are preferred; the dense arrays are a
// backward-compatibility fallback consulted only when the matching delta is
// absent. CursorItem always replaces the cursor (nil = empty hand).
type ContainerActionResult struct {
	ContainerID int64 `json:"containerId"`

	ContentsDelta  DeltaMap `json:"contentsDelta,omitempty"`
	InventoryDelta DeltaMap `json:"inventoryDelta,omitempty"`
	HotbarDelta    DeltaMap `json:"hotbarDelta,omitempty"`

	Contents        []*Slot `json:"contents,omitempty"`
	PlayerInventory []*Slot `json:"playerInventory,omitempty"`
	Hotbar          []*Slot `json:"hotbar,omitempty"`

	CursorItem *Slot `json:"cursorItem"`
}

// ContainerClosed forces a local close when the server ends the session
// (block broken, player moved away, kick).
type ContainerClosed struct {
	ContainerID int64 `json:"containerId"`
}

// ContainerContentsUpdate is the legacy bulk sync: dense everything plus
// cursor, no deltas. Still accepted and treated as a dense snapshot push.
type ContainerContentsUpdate struct {
	ContainerID     int64   `json:"containerId"`
	Contents        []*Slot `json:"contents"`
	PlayerInventory []*Slot `json:"playerInventory"`
	Hotbar          []*Slot `json:"hotbar"`
	CursorItem      *Slot   `json:"cursorItem"`
}

// WorldSummary is one entry of a world-list dataset.
type WorldSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Owner   string `json:"owner"`
	Players int    `json:"players"`
}

// WorldListResult answers a RequestWorldList. Version echoes the request;
// results for superseded versions are dropped by the client.
type WorldListResult struct {
	Kind    string         `json:"kind"`
	Version int            `json:"version"`
	Worlds  []WorldSummary `json:"worlds"`
	Error   string         `json:"error,omitempty"`
}
