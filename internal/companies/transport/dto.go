package transport

type CompanyRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Email        string  `json:"email" validate:"required,email,max=254"`
	Phone        string  `json:"phone" validate:"required,max=32"`
	PhoneRegion  string  `json:"phoneRegion" validate:"omitempty,len=2,alpha"`
	Address      string  `json:"address" validate:"max=300"`
	City         string  `json:"city" validate:"max=100"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url,max=300"`
	Registration *string `json:"registrationNumber,omitempty" validate:"omitempty,max=50"`
}

type CompanyDraft struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address,omitempty"`
	City         string  `json:"city,omitempty"`
	Website      *string `json:"website,omitempty"`
	Registration *string `json:"registrationNumber,omitempty"`
}
