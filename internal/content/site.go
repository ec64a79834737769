package content

type Treatment struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Testimonial struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

var treatments = []Treatment{
	{Title: "Acupuncture", Icon: "🧠", Description: "A traditional treatment that balances the body's energy flow, reduces pain and strengthens the immune system."},
	{Title: "Reflexology", Icon: "👣", Description: "Pressure-point work on the feet that affects organs and systems across the body, improves circulation and eases tension."},
	{Title: "Shiatsu", Icon: "👐", Description: "Japanese treatment combining pressure along the energy meridians with stretching and touch."},
	{Title: "Herbal medicine", Icon: "🌿", Description: "Natural plants used for a wide range of health issues, from immune support to digestive relief."},
	{Title: "Naturopathy", Icon: "🥗", Description: "Nutrition, supplements and natural treatments that support the body's own healing."},
	{Title: "Massage and touch therapy", Icon: "💆", Description: "Massage techniques that release tension, reduce pain, improve circulation and calm the nervous system."},
}

var testimonials = []Testimonial{
	{Name: "Ronit L.", Title: "Regular patient", Image: "https://i.pravatar.cc/150?img=32", Content: "After years of chronic back pain I finally found real relief. The team is professional and caring."},
	{Name: "David C.", Title: "Patient", Image: "https://i.pravatar.cc/150?img=52", Content: "I came in after a long period of stress and poor sleep. After a few sessions I felt a real change."},
	{Name: "Anat S.", Title: "Patient", Image: "https://i.pravatar.cc/150?img=19", Content: "Herbal treatment for seasonal allergies made my symptoms almost disappear. They really listen."},
	{Name: "Yossi M.", Title: "Regular patient", Image: "https://i.pravatar.cc/150?img=67", Content: "Acupuncture helped me deal with pain I had lived with for years. Calm place, great results."},
}

func Treatments() []Treatment {
	return append([]Treatment(nil), treatments...)
}

func Testimonials() []Testimonial {
	return append([]Testimonial(nil), testimonials...)
}
