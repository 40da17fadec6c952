package service

import "fmt"

func userKey(userID string) string { return "user:" + userID }
func cartKey(userID string) string { return "cart:" + userID }
func libraryKey(userID string) string { return "library:" + userID }
func subscriptionKey(userID string) string { return "subscription:" + userID }
func userBookingsKey(userID string) string { return "bookings:user:" + userID }
func bookingKey(bookingID string) string { return "booking:" + bookingID }

func purchaseKey(userID, receiptID string) string {
	return fmt.Sprintf("purchase:%s:%s", userID, receiptID)
}

func progressKey(userID, kind string) string {
	return fmt.Sprintf("progress:%s:%s", userID, kind)
}

const trainerPrefix = "trainer:"
