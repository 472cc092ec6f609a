package table

// UserError is an error whose text is safe to show to the end user
type UserError string

func (u UserError) Error() string {
	return string(u)
}
