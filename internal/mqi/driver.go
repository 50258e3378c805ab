package mqi

// Hconn is a connection handle scoped to one Driver.
type Hconn int32

// Hobj is an object handle scoped to one connection.
type Hobj int32

// Hmsg is a message handle scoped to one connection.
type Hmsg int64

// Filter narrows a PCF inquiry. Build with NewFilter; the value is an
// int32 for integer selectors and a string for character selectors.
type Filter struct {
	Selector int32
	Operator int32
	Value    any
}

// Driver is the transport boundary. One method per verb; every method
// returns its payload values followed by a (CompCode, Reason) pair which
// callers check before using anything else. Structures cross the boundary
// packed; drivers that update a structure return the updated bytes.
type Driver interface {
	Conn(name string) (Hconn, int32, int32)
	Connx(name string, options int32, cd, sco []byte) (Hconn, int32, int32)
	Disc(hconn Hconn) (int32, int32)

	Open(hconn Hconn, od []byte, options int32) (Hobj, []byte, int32, int32)
	Close(hconn Hconn, hobj Hobj, options int32) (int32, int32)

	Put(hconn Hconn, hobj Hobj, md, pmo, body []byte) ([]byte, []byte, int32, int32)
	Put1(hconn Hconn, od, md, pmo, body []byte) ([]byte, []byte, int32, int32)
	Get(hconn Hconn, hobj Hobj, md, gmo []byte, maxLength int32) (body, mdOut, gmoOut []byte, dataLength, cc, rc int32)

	Begin(hconn Hconn) (int32, int32)
	Cmit(hconn Hconn) (int32, int32)
	Back(hconn Hconn) (int32, int32)

	Inq(hconn Hconn, hobj Hobj, selectors []int32) (map[int32]any, int32, int32)
	Set(hconn Hconn, hobj Hobj, attrs map[int32]any) (int32, int32)

	Sub(hconn Hconn, sd []byte) (sdOut []byte, subHobj, queueHobj Hobj, cc, rc int32)

	CrtMh(hconn Hconn, cmho []byte) (Hmsg, int32, int32)
	DltMh(hconn Hconn, hmsg Hmsg) (int32, int32)
	InqMp(hconn Hconn, hmsg Hmsg, impo []byte, name string, pd []byte, propType, maxValueLength int32) (value []byte, retType, valueLength, cc, rc int32)
	SetMp(hconn Hconn, hmsg Hmsg, smpo []byte, name string, pd []byte, propType int32, value []byte) (int32, int32)

	Execute(hconn Hconn, command int32, attrs map[int32]any, filters []Filter) ([]map[int32]any, int32, int32)
}
