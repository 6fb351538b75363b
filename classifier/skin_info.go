package classifier

// ClassNames lists the model output labels in output-index order.
var ClassNames = [...]string{
	"Acne",
	"Eczema",
	"Tinea corporis",
	"Rosacea",
	"Vitiligo",
	"Melasma",
	"Urticaria",
	"Fungal Infection",
	"Bacterial Infection",
	"Viral Infection",
	"Scabies",
	"Seborrheic Dermatitis",
	"Contact Dermatitis",
	"Lupus Lesion",
	"Actinic Keratoses",
	"Basal Cell Carcinoma",
	"Squamous Cell Carcinoma",
	"Melanoma",
	"Benign Nevus",
	"Seborrheic Keratosis",
	"Dermatofibroma",
	"Cherry Angioma",
	"Vascular Lesion",
}

// SkinInfo is the reference text shown for a predicted label.
type SkinInfo struct {
	Description      string `json:"description"`
	MedicalTreatment string `json:"medical_treatment"`
	HomeRemedies     string `json:"home_remedies"`
	Diet             string `json:"diet"`
}

// LookupSkinInfo returns the reference entry for label. Unknown labels yield
// an entry with every field empty.
func LookupSkinInfo(label string) SkinInfo {
	return skinInfo[label]
}

var skinInfo = map[string]SkinInfo{
	"Acne": {
		Description:      "Blocked hair follicles cause pimples, blackheads, or cysts.",
		MedicalTreatment: "Benzoyl peroxide, retinoids, antibiotics (clindamycin), isotretinoin (severe cases).",
		HomeRemedies:     "Tea tree oil, gentle cleansing, avoid over-washing.",
		Diet:             "Avoid sugar and dairy; eat zinc-rich foods and omega-3s.",
	},
	"Eczema": {
		Description:      "Chronic itchy, dry, inflamed skin patches, often on elbows, knees, or face.",
		MedicalTreatment: "Corticosteroid creams, antihistamines, moisturizers, immunosuppressants.",
		HomeRemedies:     "Oatmeal baths, coconut oil, wear soft cotton clothing.",
		Diet:             "Avoid triggers (dairy, nuts, eggs in some cases); anti-inflammatory foods.",
	},
	"Tinea corporis": {
		Description:      "Autoimmune disease causing red plaques with silvery scales.",
		MedicalTreatment: "Topical steroids, vitamin D creams, biologics.",
		HomeRemedies:     "Aloe vera, Dead Sea salt baths, stress reduction.",
		Diet:             "Avoid processed foods & alcohol; include omega-3s and greens.",
	},
	"Rosacea": {
		Description:      "Chronic facial redness & flushing; may have papules/pustules.",
		MedicalTreatment: "Topical metronidazole, azelaic acid, oral doxycycline.",
		HomeRemedies:     "Cold compress, green tea soaks; trigger avoidance.",
		Diet:             "Avoid spicy foods, alcohol, hot drinks; calming, hydrating foods.",
	},
	"Vitiligo": {
		Description:      "Loss of skin pigment (melanin) causing well-defined white patches.",
		MedicalTreatment: "Topical steroids/tacrolimus, phototherapy, grafts.",
		HomeRemedies:     "Broad-spectrum sunscreen; cosmetic camouflage.",
		Diet:             "Copper/B12/folate-rich foods; minimize ultra-processed foods.",
	},
	"Melasma": {
		Description:      "Brown patches on face; worsens with sun/hormones.",
		MedicalTreatment: "Hydroquinone, triple combo creams, peels, laser.",
		HomeRemedies:     "Aloe vera, strict photoprotection.",
		Diet:             "Antioxidant-rich foods: berries, citrus, green tea.",
	},
	"Urticaria": {
		Description:      "Transient, itchy wheals; often allergic or idiopathic.",
		MedicalTreatment: "Second-generation antihistamines; short steroid burst if severe.",
		HomeRemedies:     "Cool compress, loose clothing.",
		Diet:             "Avoid known triggers; low-histamine trial if advised.",
	},
	"Fungal Infection": {
		Description:      "Tinea/candidiasis; itchy, red, often annular lesions.",
		MedicalTreatment: "Topical clotrimazole/terbinafine; oral azoles if extensive.",
		HomeRemedies:     "Keep areas dry; dilute tea tree oil for tinea pedis.",
		Diet:             "Cut excess sugar; add probiotics (yogurt, kefir).",
	},
	"Bacterial Infection": {
		Description:      "Impetigo/cellulitis; erythema, crusting or warmth & swelling.",
		MedicalTreatment: "Topical mupirocin; oral antibiotics for cellulitis.",
		HomeRemedies:     "Honey (antibacterial) adjunct, not replacement.",
		Diet:             "Immune-support foods: garlic, ginger, citrus.",
	},
	"Viral Infection": {
		Description:      "Herpes/warts/molluscum; blisters, warty papules or umbilicated bumps.",
		MedicalTreatment: "Acyclovir for HSV; cryo/cantharidin for warts.",
		HomeRemedies:     "Aloe/calamine for comfort.",
		Diet:             "Vitamin C foods; lysine-rich foods may help HSV.",
	},
	"Scabies": {
		Description:      "Sarcoptes mite; intense nocturnal itch; burrows in webs of fingers, wrists.",
		MedicalTreatment: "Permethrin 5% whole-body; oral ivermectin if needed; treat contacts.",
		HomeRemedies:     "Wash bedding/clothes hot cycle; bag items 3+ days.",
		Diet:             "General immune-support diet.",
	},
	"Seborrheic Dermatitis": {
		Description:      "Scalp/face erythema with greasy scale; Malassezia-related.",
		MedicalTreatment: "Ketoconazole/zinc pyrithione shampoos; mild topical steroids.",
		HomeRemedies:     "Coconut oil, diluted ACV rinses.",
		Diet:             "Reduce sugar; include omega-3s.",
	},
	"Contact Dermatitis": {
		Description:      "Allergic/irritant reaction to allergens/chemicals/metals.",
		MedicalTreatment: "Topical steroids; antihistamines for itch; avoidant strategy.",
		HomeRemedies:     "Cool compresses, colloidal oatmeal.",
		Diet:             "Anti-inflammatory pattern; eliminate trigger if food-related.",
	},
	"Lupus Lesion": {
		Description:      "Photosensitive malar/discoid rashes; autoimmune.",
		MedicalTreatment: "Photoprotection, topical steroids/calcineurin inhibitors; hydroxychloroquine.",
		HomeRemedies:     "Sun avoidance, stress management.",
		Diet:             "Anti-inflammatory foods; omega-3s.",
	},
	"Actinic Keratoses": {
		Description:      "Rough scaly macules on sun-damaged skin; precancerous.",
		MedicalTreatment: "Cryotherapy; 5-FU/imiquimod; photodynamic therapy.",
		HomeRemedies:     "Sun protection.",
		Diet:             "Carotenoid/antioxidant-rich produce.",
	},
	"Basal Cell Carcinoma": {
		Description:      "Most common skin cancer; pearly papule; rarely metastasizes.",
		MedicalTreatment: "Excision/Mohs; topical imiquimod in select cases.",
		HomeRemedies:     "None—seek medical care; photoprotection.",
		Diet:             "Plant-forward, antioxidants.",
	},
	"Squamous Cell Carcinoma": {
		Description:      "Keratinizing tumor; scaly/red nodule/ulcer; can metastasize.",
		MedicalTreatment: "Excision/Mohs; radiation in select cases.",
		HomeRemedies:     "None—medical care essential; photoprotection.",
		Diet:             "Tomatoes (lycopene), green tea; avoid smoking.",
	},
	"Melanoma": {
		Description:      "Aggressive melanoma; evolving asymmetric pigmented lesion.",
		MedicalTreatment: "Wide excision; immunotherapy/targeted therapy.",
		HomeRemedies:     "None—urgent specialist care.",
		Diet:             "Antioxidant-rich; avoid alcohol/smoking.",
	},
	"Benign Nevus": {
		Description:      "Common mole; benign melanocytic nevus.",
		MedicalTreatment: "Removal only if symptomatic or changing.",
		HomeRemedies:     "None needed.",
		Diet:             "General healthy diet.",
	},
	"Seborrheic Keratosis": {
		Description:      "Stuck-on, waxy papules; benign.",
		MedicalTreatment: "Cryotherapy/curettage/laser if cosmetic.",
		HomeRemedies:     "Not required.",
		Diet:             "Not diet-related.",
	},
	"Dermatofibroma": {
		Description:      "Firm dermal nodule; dimples on pinching.",
		MedicalTreatment: "Excision if painful/cosmetic.",
		HomeRemedies:     "None.",
		Diet:             "Balanced diet.",
	},
	"Cherry Angioma": {
		Description:      "Benign red vascular papules.",
		MedicalTreatment: "Laser/electrocautery if desired.",
		HomeRemedies:     "None required.",
		Diet:             "Balanced diet.",
	},
	"Vascular Lesion": {
		Description:      "Capillary/vascular malformations or angiomas.",
		MedicalTreatment: "Laser therapy depending on type.",
		HomeRemedies:     "Photoprotection for visible areas.",
		Diet:             "General healthy diet.",
	},
}
