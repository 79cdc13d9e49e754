package knowledge

import "faqbot/internal/models"

const (
	programsAnswer = "Iron Lady offers three main programs:\n\n🎯 **Leadership Essentials Program** - Focusing on shameless pitching, strategic maximization, and unapologetic mindset\n\n💰 **1-crore Club** - For high achievers targeting 1-crore income\n\n👩‍💼 **100 Board Members** - To develop board-ready women leaders\n\nAll are 3-month certificate programs designed for women leaders at different career stages."

	durationAnswer = "All Iron Lady programs are **3-month certificate programs** with weekly sessions from industry experts and business leaders. Each program is designed to provide intensive, practical leadership training that fits into your busy schedule."

	deliveryAnswer = "Iron Lady offers **both online and offline delivery options** to suit your preferences and schedule:\n\n💻 **Online**: Participate from anywhere with live interactive sessions\n🏢 **Offline**: In-person sessions conducted at ITPL, Bengaluru\n\nYou can choose the format that works best for you!"

	certificatesAnswer = "**Yes!** All Iron Lady programs provide certificates from **Tata Institute of Social Sciences** upon completion. This prestigious certification adds significant value to your professional profile and validates your leadership development journey."

	mentorsAnswer = "Our programs are led by **successful CEOs and Ex-CEOs** who serve as program leaders and mentors. These industry veterans bring real-world leadership experience, practical insights, and proven strategies to help you excel in your leadership journey."

	locationAnswer = "Offline programs are conducted at **ITPL (International Tech Park Limited), Bengaluru**. This modern, professional venue provides the perfect environment for learning and networking with fellow women leaders."
)

const welcomeText = `👋 **Welcome to Iron Lady Leadership Programs!**

I'm here to help you learn about our transformative leadership programs designed specifically for ambitious women leaders.

🌟 **What I can help you with:**
• Information about our 3 leadership programs
• Program duration and delivery options
• Certification details
• Mentor information
• Location and logistics

Feel free to ask me anything or click on the quick questions below to get started!`

var defaultResponses = []string{
	`I'd be happy to help you learn more about Iron Lady's leadership programs! 🌟

Here are some topics I can assist you with:

🎯 **Our Programs**: Leadership Essentials, 1-crore Club, 100 Board Members
⏰ **Duration**: 3-month certificate programs
💻 **Delivery**: Online and offline options
🏆 **Certificates**: From Tata Institute of Social Sciences
👥 **Mentors**: Successful CEOs and Ex-CEOs
📍 **Location**: ITPL, Bengaluru

What would you like to know more about?`,

	`Great question! While I specialize in information about Iron Lady's leadership programs, I'd be happy to help you with:

✨ Program details and features
⏰ Duration and scheduling
💻 Online vs offline options
🎓 Certification information
👨‍💼 Information about our mentors
📍 Location details

Is there something specific about our programs you'd like to explore?`,
}

// DefaultData returns the built-in Iron Lady data set.
func DefaultData() Data {
	return Data{
		Faqs: []models.FaqEntry{
			{Question: "What programs does Iron Lady offer?", Answer: programsAnswer},
			{Question: "What is the program duration?", Answer: durationAnswer},
			{Question: "Is the program online or offline?", Answer: deliveryAnswer},
			{Question: "Are certificates provided?", Answer: certificatesAnswer},
			{Question: "Who are the mentors/coaches?", Answer: mentorsAnswer},
			{Question: "Where are offline programs held?", Answer: locationAnswer},
		},
		// Declaration order is the tie-break order of the keyword matcher.
		Categories: []models.KeywordCategory{
			{Name: "programs", Keywords: []string{"program", "course", "training", "offer", "available", "options"}},
			{Name: "duration", Keywords: []string{"duration", "time", "long", "period", "months", "weeks"}},
			{Name: "delivery", Keywords: []string{"online", "offline", "virtual", "person", "mode", "format"}},
			{Name: "certificates", Keywords: []string{"certificate", "certification", "credential", "qualify", "accredited"}},
			{Name: "mentors", Keywords: []string{"mentor", "coach", "teacher", "instructor", "leader", "guide", "who"}},
			{Name: "location", Keywords: []string{"location", "place", "venue", "address", "where", "bengaluru", "bangalore", "itpl"}},
		},
		CategoryAnswers: map[string]string{
			"programs":     programsAnswer,
			"duration":     durationAnswer,
			"delivery":     deliveryAnswer,
			"certificates": certificatesAnswer,
			"mentors":      mentorsAnswer,
			"location":     locationAnswer,
		},
		Welcome:          welcomeText,
		DefaultResponses: append([]string(nil), defaultResponses...),
	}
}

// Default builds the built-in knowledge base. The built-in data is known to
// be valid, so a failure here is a programming error.
func Default() *Base {
	b, err := New(DefaultData())
	if err != nil {
		panic("knowledge: invalid built-in data: " + err.Error())
	}
	return b
}
