package reminder

import (
	"fmt"
	"strings"
	"time"
)

// RecipeSuggestion picks a usage tip for the reminder email by substring
// matching the category key. Unmatched categories get a generic line.
func RecipeSuggestion(productName, category string) string {
	key := strings.ToLower(category)
	switch {
	case strings.Contains(key, "dairy"):
		return fmt.Sprintf("Try a creamy %s smoothie or a simple mac and cheese using %s.", productName, productName)
	case strings.Contains(key, "fruit"):
		return fmt.Sprintf("Whip up a fresh fruit salad featuring %s, or blend it into a refreshing smoothie.", productName)
	case strings.Contains(key, "vegetable"):
		return fmt.Sprintf("Roast your %s with olive oil and herbs, or toss into a quick stir-fry.", productName)
	case strings.Contains(key, "meat"), strings.Contains(key, "poultry"):
		return fmt.Sprintf("Marinate and grill %s, or simmer it in a hearty stew.", productName)
	case strings.Contains(key, "seafood"):
		return fmt.Sprintf("Pan-sear %s with lemon and garlic, or add to a light pasta.", productName)
	case strings.Contains(key, "baked"):
		return fmt.Sprintf("Toast %s for croutons, or make a quick bread pudding.", productName)
	case strings.Contains(key, "canned"):
		return fmt.Sprintf("Use %s in a simple casserole or a comforting soup.", productName)
	case strings.Contains(key, "frozen"):
		return fmt.Sprintf("Bake or air-fry %s and serve with a dipping sauce.", productName)
	case strings.Contains(key, "medicine"), strings.Contains(key, "supplement"):
		return fmt.Sprintf("No recipe suggestion for %s; ensure proper usage as directed.", productName)
	case strings.Contains(key, "beverage"):
		return fmt.Sprintf("Chill %s and serve with citrus, or turn it into a mocktail.", productName)
	case strings.Contains(key, "condiment"), strings.Contains(key, "sauce"):
		return fmt.Sprintf("Use %s as a marinade base or drizzle over roasted vegetables.", productName)
	}
	return fmt.Sprintf("Consider a simple recipe using %s as the main ingredient.", productName)
}

func reminderSubject(productName string) string {
	return fmt.Sprintf("⏰ %s expires soon - Use it before it's too late!", productName)
}

func reminderBody(productName, category string, expiryDate time.Time) string {
	if category == "" {
		category = "Not specified"
	}
	suggestion := RecipeSuggestion(productName, category)

	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; line-height: 1.5; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #16a34a;">🔔 Expiry Reminder from Shelf Buddy</h2>
      <p>Hi there! This is a friendly reminder that your <strong>%s</strong> is approaching its expiry date.</p>

      <div style="background: #f0f9ff; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="margin-top: 0; color: #0369a1;">Product Details:</h3>
        <p><strong>Product:</strong> %s</p>
        <p><strong>Expiry Date:</strong> %s</p>
        <p><strong>Category:</strong> %s</p>
      </div>

      <div style="background: #f0fdf4; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="margin-top: 0; color: #16a34a;">💡 Recipe Suggestion:</h3>
        <p>%s</p>
      </div>

      <p>We're reminding you 2 days before expiry so you have time to use it and avoid waste!</p>

      <p style="color: #666; font-size: 14px; margin-top: 30px;">
        This reminder was sent from Shelf Buddy's automated system.
      </p>
    </div>
  `, productName, productName, expiryDate.Format("2006-01-02"), category, suggestion)
}

func cancellationSubject(productName string) string {
	return fmt.Sprintf("Reminder Cancelled - %s", productName)
}

func cancellationBody(ownerEmail, productName string, expiryDate *time.Time) string {
	displayName := "there"
	if at := strings.Index(ownerEmail, "@"); at > 0 {
		displayName = ownerEmail[:at]
	}

	expiry := "Not specified"
	if expiryDate != nil {
		expiry = expiryDate.Format("2006-01-02")
	}

	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; line-height: 1.6; max-width: 640px; margin: 0 auto; padding: 16px;">
      <p style="margin: 0 0 12px 0;">Greetings, <strong>%s</strong>!</p>

      <h2 style="color: #dc2626; margin: 0 0 12px 0;">Reminder Cancelled</h2>

      <p style="margin: 0 0 12px 0;">
        You have successfully cancelled the expiry reminder for <strong>%s</strong>.
      </p>

      <div style="background: #fef2f2; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #dc2626;">
        <h3 style="margin: 0 0 8px 0; color: #dc2626;">Cancelled Reminder Details</h3>
        <p style="margin: 4px 0;"><strong>Product:</strong> %s</p>
        <p style="margin: 4px 0;"><strong>Expiry Date:</strong> %s</p>
        <p style="margin: 4px 0;"><strong>Status:</strong> Reminder cancelled</p>
      </div>

      <p style="margin: 12px 0;">
        You will no longer receive automatic reminders for this product. You can always add it back or create new reminders through the Shelf Buddy app.
      </p>

      <p style="margin: 12px 0;">
        Thanks for using Shelf Buddy — we appreciate you! Have a wonderful day.
      </p>

      <p style="color: #666; font-size: 12px; margin-top: 24px;">
        This notification was sent from Shelf Buddy's reminder system.
      </p>
    </div>
  `, displayName, productName, productName, expiry)
}
