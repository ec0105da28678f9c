package basenji

/*------------------------------------------------------------------
 *
 * Purpose:	Static RDS/RBDS reference tables.
 *
 * Description:	Names for things the protocol identifies by number:
 *		group types, registered ODA applications, programme
 *		types (which differ between RDS and the North
 *		American RBDS variant), PI area coverage codes and
 *		RT+ content types.  Read-only; the decoders only ever
 *		look things up here.
 *
 *---------------------------------------------------------------*/

// BandStandard selects between the European RDS and the US RBDS
// interpretation of the PTY table.
type BandStandard int

const (
	StandardRDS BandStandard = iota
	StandardRBDS
)

// GroupTypeDescriptions names the 32 group variants.
var GroupTypeDescriptions = map[string]string{
	"0A":  "basicTuning",
	"0B":  "basicTuningB",
	"1A":  "progItemNoSlowLabel",
	"1B":  "progItemNo",
	"2A":  "radioText",
	"2B":  "radioTextB",
	"3A":  "openDataAppId",
	"3B":  "oda",
	"4A":  "clock",
	"4B":  "oda",
	"5A":  "TDC/oda",
	"5B":  "TDC/oda",
	"6A":  "inHouseA",
	"6B":  "inHouseB",
	"7A":  "radioPaging/oda",
	"7B":  "oda",
	"8A":  "TMC",
	"8B":  "oda",
	"9A":  "EWS/oda",
	"9B":  "oda",
	"10A": "progTypeName",
	"10B": "oda",
	"11A": "oda-freeformat",
	"11B": "oda",
	"12A": "oda-freeformat",
	"12B": "oda",
	"13A": "enhancedRadioPaging/oda",
	"13B": "oda",
	"14A": "EON",
	"14B": "EON_B",
	"15A": "(RBDS only)",
	"15B": "fastBasicTuning",
}

// OdaAidNames names the registered Open Data Applications.  Only TMC
// and RT+ have decoders here; the rest exist so reports can say what
// a station is carrying.
var OdaAidNames = map[uint16]string{
	0x4BD7: "RT+",
	0xCD46: "TMC",
	0xE911: "EAS open protocol",
	0x0093: "DAB-RDS-crossref",
	0x0D45: "TMC ALERT-C test",
	0x5757: "personalWeatherStation",
	0x6365: "RDS2",
	0x6A7A: "WarningReceiverSweden",
	0x7373: "Enhanced Early Warning System",
	0xC3B0: "iTunes tagging",
	0xCD47: "TMC arbPICC",
	0x125F: "I-FM-RDS for Fixed and Mobile devices",
	0x1C68: "ITIS In-vehicle database",
	0x4400: "RDS Light",
	0x4BD8: "RT+/eRT",
	0x50DD: "DisasterWarning",
	0x6552: "Enhanced RadioText / eRT",
	0xA112: "NL_Alert System",
	0xA911: "Data FM Selective Multipoint",
	0xC350: "NRSC Song title and artist",
	0xC4D4: "eEAS",
	0xC737: "UMC - Utility Message Channel",
	0xE123: "APS Gateway",
	0xE1C1: "eCARmerce Action code",
	0xE411: "Cell-Loc Beacon downlink",
	0xCB73: "Citibus1",
	0x4C59: "Citibus2",
	0xCC21: "Citibus3",
	0x1DC2: "Citibus4",
	0x4AA1: "Rasant",
	0x0BCB: "Leisure & Practical Info for Drivers",
	0xCE6B: "encrypted TTI ALERT-Plus",
	0x1DC5: "encrypted TTI ALERT-Plus test",
	0x4D87: "Radio Commerce System (RCS)",
	0x0CC1: "Wireless Playground broadcast control",
	0x6363: "Hybradio RDS-Net test",
	0xABCF: "RF Power Monitoring",
	0xFF7F: "RFT Station Logo",
	0xFF80: "RFT+(work)",
	0xC563: "ID Logic",
	0xC360: "ALHTECH Ad-Ver",
	0xC3C3: "NAVTEQ Traffic Plus",
	0xC3A1: "CEA Personal Radio Service",
	0xC549: "CooperPower smart grid",
	0xC6A7: "Koplar Veil enabled interactive device",
}

// PtyNames maps PTY 0..31 to its RDS and RBDS meanings.
var PtyNames = [32][2]string{
	{"none", "none"},
	{"news", "news"},
	{"current affairs", "information"},
	{"information", "sport"},
	{"sport", "talk"},
	{"education", "rock music"},
	{"drama", "classic rock"},
	{"culture", "adult hits"},
	{"science", "soft rock"},
	{"varied", "top 40"},
	{"pop music", "country"},
	{"rock music", "oldies"},
	{"mor music", "soft"},
	{"light classical", "nostalgia"},
	{"serious classical", "jazz"},
	{"other music", "classical"},
	{"weather", "r&b"},
	{"finance", "soft r&b"},
	{"childrens programmes", "language"},
	{"social affairs", "religious music"},
	{"religion", "religious talk"},
	{"phone in", "personality"},
	{"travel", "public"},
	{"leisure", "college"},
	{"jazz music", "spanish talk"},
	{"country music", "spanish music"},
	{"national music", "hip hop"},
	{"oldies music", ""},
	{"folk music", ""},
	{"documentary", "weather"},
	{"alarm test", "emergency test"},
	{"alarm", "emergency"},
}

// PtyName resolves a PTY index for the selected standard.
func PtyName(pty int, std BandStandard) string {
	if pty < 0 || pty >= len(PtyNames) {
		return ""
	}
	return PtyNames[pty][std]
}

// PiAreaDescriptors names the area coverage code in PIC bits 11:8.
var PiAreaDescriptors = [16]string{
	"local", "international", "national", "supraregional",
	"region1", "region2", "region3", "region4",
	"region5", "region6", "region7", "region8",
	"region9", "region10", "region11", "region12",
}

// RtPlusContentTypes names RT+ content type codes.  Codes 54..58 are
// unassigned and render numerically.
var RtPlusContentTypes = [64]string{
	0:  "dummy_class",
	1:  "item_title",
	2:  "item_album",
	3:  "item_tracknumber",
	4:  "item_artist",
	5:  "item_composition",
	6:  "item_movement",
	7:  "item_conductor",
	8:  "item_composer",
	9:  "item_band",
	10: "item_comment",
	11: "item_genre",
	12: "info_news",
	13: "info_news_local",
	14: "info_stockmarket",
	15: "info_sport",
	16: "info_lottery",
	17: "info_horoscope",
	18: "info_daily_diversion",
	19: "info_health",
	20: "info_event",
	21: "info_szene",
	22: "info_cinema",
	23: "info_stupidity_machine",
	24: "info_date_time",
	25: "info_weather",
	26: "info_traffic",
	27: "info_alarm",
	28: "info_advertisement",
	29: "info_url",
	30: "info_other",
	31: "stationname_short",
	32: "stationname_long",
	33: "programme_now",
	34: "programme_next",
	35: "programme_part",
	36: "programme_host",
	37: "programme_editorial_staff",
	38: "programme_frequency",
	39: "programme_homepage",
	40: "programme_subchannel",
	41: "phone_hotline",
	42: "phone_studio",
	43: "phone_other",
	44: "sms_studio",
	45: "sms_other",
	46: "email_hotline",
	47: "email_studio",
	48: "email_other",
	49: "mms_other",
	50: "chat",
	51: "chat_center",
	52: "vote_question",
	53: "vote_center",
	59: "place",
	60: "appointment",
	61: "identifier",
	62: "purchase",
	63: "get_data",
}

// diMeanings names the decoder identification bits by slot address.
var diMeanings = [4][2]string{
	{"PTYstatic", "PTYdynamic"},
	{"notCompressed", "compressed"},
	{"noArtHead", "artificialHead"},
	{"mono", "stereo"},
}
