package anonymask

// Cloner allows types to provide deep copy logic.
// Fields requires it so that anonymizing or restoring never touches the
// caller's value.
//
// Clone must return a deep copy: Fields rewrites strings inside slices and
// maps in place on the clone, so shared backing arrays or maps would leak
// placeholders into the original. A type with only scalar fields can return
// the receiver:
//
//	func (t Ticket) Clone() Ticket { return t }
//
// Types with reference fields copy them:
//
//	func (t Thread) Clone() Thread {
//	    msgs := make([]string, len(t.Messages))
//	    copy(msgs, t.Messages)
//	    return Thread{ID: t.ID, Messages: msgs}
//	}
type Cloner[T any] interface {
	Clone() T
}
