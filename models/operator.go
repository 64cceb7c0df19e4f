package models

type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type Operator struct {
	OperatorID string `json:"operatorId"`
	Login      string `json:"login"`
	Password   string `json:"-"`
}
