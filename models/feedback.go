package models

type Feedback struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	UserPhoto string `json:"userPhoto,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Date      string `json:"date"`
	Likes     int    `json:"likes"`
}
