package models

import "time"

// InquiryType categorizes a customer-service inquiry.
type InquiryType string

const (
	InquiryDelivery       InquiryType = "DELIVERY"
	InquiryProduct        InquiryType = "PRODUCT"
	InquiryExchangeReturn InquiryType = "EXCHANGE_RETURN"
	InquiryMember         InquiryType = "MEMBER"
	InquiryOther          InquiryType = "OTHER"
)

// InquiryStatus tracks whether an inquiry has been answered.
type InquiryStatus string

const (
	InquiryPending  InquiryStatus = "PENDING"
	InquiryAnswered InquiryStatus = "ANSWERED"
)

// InquiryImage is a photo attached to an inquiry.
type InquiryImage struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	InquiryID int    `json:"-"`
	URL       string `json:"url"`
}

// Inquiry is a customer-service question. Answer and AnsweredAt stay nil
// until an admin responds.
type Inquiry struct {
	ID         int            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int            `json:"-"`
	Type       InquiryType    `json:"type" gorm:"type:varchar(20)"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Status     InquiryStatus  `json:"status" gorm:"type:varchar(10)"`
	Answer     *string        `json:"answer"`
	AnsweredAt *time.Time     `json:"answeredAt"`
	Images     []InquiryImage `json:"images,omitempty" gorm:"foreignKey:InquiryID"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// AdminInquiryUser is the author info shown on the admin listing.
type AdminInquiryUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminInquiry is an inquiry with its author, as served to admins.
type AdminInquiry struct {
	Inquiry
	User AdminInquiryUser `json:"user"`
}

// CreateInquiryRequest submits a new inquiry.
type CreateInquiryRequest struct {
	Type      InquiryType `json:"type" validate:"required,oneof=DELIVERY PRODUCT EXCHANGE_RETURN MEMBER OTHER"`
	Title     string      `json:"title" validate:"required,min=1,max=100"`
	Content   string      `json:"content" validate:"required"`
	ImageURLs []string    `json:"images,omitempty" validate:"omitempty,dive,url"`
}

// AnswerInquiryRequest sets or replaces the admin answer.
type AnswerInquiryRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// InquiryQuery holds the paging parameters for a user's own listing.
type InquiryQuery struct {
	Page  int
	Limit int
}

// AdminInquiryQuery adds the admin listing filters.
type AdminInquiryQuery struct {
	Page   int
	Limit  int
	Status InquiryStatus
	Type   InquiryType
}

// InquiryList is the paged listing of a user's own inquiries.
type InquiryList struct {
	Data []Inquiry `json:"data"`
	Meta ListMeta  `json:"meta"`
}

// AdminInquiryList is the paged admin listing with author info.
type AdminInquiryList struct {
	Data []AdminInquiry `json:"data"`
	Meta ListMeta       `json:"meta"`
}
