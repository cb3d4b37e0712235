package errCode

type Code int

const (
	OK Code = iota
	EMPTY_VALUE
	INVALID_VALUE
	SINGULAR_MATRIX
	DATA_ALIGNMENT
	IO_FAILURE
	CONFIG_INVALID
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case EMPTY_VALUE:
		return "EMPTY_VALUE"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case SINGULAR_MATRIX:
		return "SINGULAR_MATRIX"
	case DATA_ALIGNMENT:
		return "DATA_ALIGNMENT"
	case IO_FAILURE:
		return "IO_FAILURE"
	case CONFIG_INVALID:
		return "CONFIG_INVALID"
	default:
		return "UNKNOWN"
	}
}
