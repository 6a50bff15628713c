package services

import (
	"fmt"
	"log"

	"homelet-server/models"
	"homelet-server/storage"
)

// NotificationService persists in-app notifications for application events.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (ns *NotificationService) notify(userID uint, notifType, title, body string, applicationID uint) {
	refID := applicationID
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Body:    body,
		RefType: "application",
		RefID:   &refID,
	}
	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to create notification for user %d: %v", userID, err)
	}
}

// NotifyApplicationReceived tells the listing owner a new application arrived.
func (ns *NotificationService) NotifyApplicationReceived(ownerID uint, applicantName, propertyTitle string, applicationID uint) {
	ns.notify(ownerID, "application_received",
		"New rental application",
		fmt.Sprintf("%s applied for %s", applicantName, propertyTitle),
		applicationID)
}

// NotifyApplicationStatus tells the applicant their application was reviewed.
func (ns *NotificationService) NotifyApplicationStatus(applicantID uint, propertyTitle, status string, applicationID uint) {
	ns.notify(applicantID, "application_status",
		"Application "+status,
		fmt.Sprintf("Your application for %s is now %s", propertyTitle, status),
		applicationID)
}

// NotifyApplicationMessage tells the other party about a new thread message.
func (ns *NotificationService) NotifyApplicationMessage(recipientID uint, senderName, propertyTitle string, applicationID uint) {
	ns.notify(recipientID, "application_message",
		"New message",
		fmt.Sprintf("%s sent a message about %s", senderName, propertyTitle),
		applicationID)
}
