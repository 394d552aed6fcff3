package user

// User is a registered customer. CartID names the permanent cart it owns.
type User struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
	CartID   string `json:"cartNum" db:"cart"`
}

type UserNew struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is handed back on register and login.
type Session struct {
	Token   string `json:"token"`
	CartNum string `json:"cartNum"`
}

type Dashboard struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	CartNum string `json:"cartNum"`
}
