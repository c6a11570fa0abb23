package wire

// Request type tags.
const (
	TypeContainerSlotClick     = "container_slot_click"
	TypeContainerQuickTransfer = "container_quick_transfer"
	TypeRequestCloseContainer  = "request_close_container"
	TypeRequestWorldList       = "request_world_list"
)

// SourceKind names the slot collection a wire index refers to.
type SourceKind string

const (
	SourceContainer SourceKind = "container"
	SourceInventory SourceKind = "inventory"
	SourceHotbar    SourceKind = "hotbar"
)

// ContainerSlotClick reports one predicted slot click. The server replies
// with a ContainerActionResult push; there is no direct response.
// For player-side clicks (IsContainerSlot false) SlotIndex spans the
// combined inventory+hotbar range 1..36.
type ContainerSlotClick struct {
	ContainerID     int64  `json:"containerId"`
	SlotIndex       int    `json:"slotIndex"`
	IsContainerSlot bool   `json:"isContainerSlot"`
	ClickKind       string `json:"clickKind"` // "left" | "right"
}

func (ContainerSlotClick) MessageType() string { return TypeContainerSlotClick }

// ContainerQuickTransfer asks the server to bulk-move a stack between the
// container and the player inventory (shift-click). The destination depends
// on server-side stacking, so the client never predicts it.
type ContainerQuickTransfer struct {
	ContainerID int64      `json:"containerId"`
	SlotIndex   int        `json:"slotIndex"`
	SourceKind  SourceKind `json:"sourceKind"`
}

func (ContainerQuickTransfer) MessageType() string { return TypeContainerQuickTransfer }

// RequestCloseContainer notifies the server that the client closed the
// container UI.
type RequestCloseContainer struct {
	ContainerID int64 `json:"containerId"`
}

func (RequestCloseContainer) MessageType() string { return TypeRequestCloseContainer }

// RequestWorldList asks for one world-list dataset ("mine", "friends", ...).
// Version is echoed back in the result so stale in-flight responses can be
// dropped.
type RequestWorldList struct {
	Kind    string `json:"kind"`
	Version int    `json:"version"`
}

func (RequestWorldList) MessageType() string { return TypeRequestWorldList }
