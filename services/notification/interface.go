package notification

import (
	"context"
	"fmt"

	staffRepo "fairway/database/repository/staff"
	userRepo "fairway/database/repository/user"
	"fairway/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes. Callers in the
// reservation core treat every send as fire-and-forget.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	SendStaffPushNotification(ctx context.Context, staffID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
	Staff staffRepo.StaffRepository
}

func NewDefaultNotificationService(users userRepo.UserRepository, staff staffRepo.StaffRepository) (*DefaultNotificationService, error) {
	if users == nil || staff == nil {
		return nil, fmt.Errorf("notification service initialization error: user or staff repository is nil")
	}
	return &DefaultNotificationService{Users: users, Staff: staff}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s has no FCM token", userID)
	}
	return send(ctx, u.FCMToken, title, body, withRole(data, "user"))
}

// SendStaffPushNotification looks up a staff member's FCM token and sends a push.
func (s *DefaultNotificationService) SendStaffPushNotification(ctx context.Context, staffID, title, body string, data map[string]string) error {
	st, err := s.Staff.GetByID(staffID)
	if err != nil {
		return fmt.Errorf("SendStaffPushNotification: could not find staff %s: %w", staffID, err)
	}
	if st.FCMToken == "" {
		return fmt.Errorf("SendStaffPushNotification: staff %s has no FCM token", staffID)
	}
	return send(ctx, st.FCMToken, title, body, withRole(data, "staff"))
}

func withRole(data map[string]string, role string) map[string]string {
	if data == nil {
		data = make(map[string]string)
	}
	if _, ok := data["role"]; !ok {
		data["role"] = role
	}
	return data
}

func send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
