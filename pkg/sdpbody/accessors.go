package sdpbody

import (
	"log/slog"
	"strings"

	"github.com/emiago/sipgo/sip"
	"github.com/pion/sdp/v3"

	"github.com/arzzra/sipbody/pkg/sip/message"
)

func decodeSIP(m *message.Message) (sip.Message, error) {
	if m == nil {
		return nil, newError(CodeHeaderInvalid, "no message")
	}
	sm, err := m.SIP()
	if err != nil {
		return nil, newError(CodeHeaderInvalid, "failed to parse message headers").WithCause(err)
	}
	return sm, nil
}

// CallID возвращает значение Call-ID без окружающих пробелов
func CallID(m *message.Message) (string, error) {
	sm, err := decodeSIP(m)
	if err != nil {
		return "", err
	}
	h := sm.CallID()
	if h == nil {
		return "", newError(CodeHeaderMissing, "call-id not found")
	}
	v := strings.TrimSpace(h.Value())
	if v == "" {
		return "", newError(CodeHeaderMissing, "call-id is empty")
	}
	return v, nil
}

// ToTag извлекает тег из заголовка To.
// Отсутствие тега не ошибка: возвращается пустая строка.
func ToTag(m *message.Message) (string, error) {
	sm, err := decodeSIP(m)
	if err != nil {
		return "", err
	}
	to := sm.To()
	if to == nil {
		return "", newError(CodeHeaderMissing, "To header field missing")
	}
	tag, _ := to.Params.Get("tag")
	return tag, nil
}

// FromTag извлекает тег из заголовка From.
// Отсутствие тега не ошибка: возвращается пустая строка.
func FromTag(m *message.Message) (string, error) {
	sm, err := decodeSIP(m)
	if err != nil {
		return "", err
	}
	from := sm.From()
	if from == nil {
		return "", newError(CodeHeaderMissing, "From header field missing")
	}
	tag, _ := from.Params.Get("tag")
	return tag, nil
}

// ViaBranch возвращает параметр branch n-го Via (нумерация с 1,
// через все заголовки Via по порядку).
func ViaBranch(m *message.Message, n int) (string, error) {
	if n < 1 {
		return "", newError(CodeHeaderMissing, "via number %d out of range", n).WithField("via", n)
	}
	sm, err := decodeSIP(m)
	if err != nil {
		return "", err
	}

	hop := 0
	for _, h := range sm.GetHeaders("Via") {
		via, ok := h.(*sip.ViaHeader)
		if !ok {
			continue
		}
		hop++
		if hop != n {
			continue
		}
		branch, ok := via.Params.Get("branch")
		if !ok {
			return "", newError(CodeHeaderMissing, "branch not found in via %d", n).WithField("via", n)
		}
		return branch, nil
	}
	return "", newError(CodeHeaderMissing, "via %d not found", n).WithField("via", n)
}

// ContactURI возвращает URI первого контакта. URI без хоста считается ошибкой.
func ContactURI(m *message.Message) (sip.Uri, error) {
	sm, err := decodeSIP(m)
	if err != nil {
		return sip.Uri{}, err
	}
	var contact *sip.ContactHeader
	if hs := sm.GetHeaders("Contact"); len(hs) > 0 {
		contact, _ = hs[0].(*sip.ContactHeader)
	}
	if contact == nil {
		return sip.Uri{}, newError(CodeHeaderMissing, "contact not found")
	}
	if contact.Address.Host == "" {
		return sip.Uri{}, newError(CodeHeaderInvalid, "failed to parse Contact URI [%s]", contact.Value()).
			WithField("contact", contact.Value())
	}
	return contact.Address, nil
}

// sessionDescription разбирает SDP тела сообщения.
// Фрагменты trickle-ICE не являются полным SDP и не принимаются.
func (e *Extractor) sessionDescription(m *message.Message) (*sdp.SessionDescription, error) {
	body, err := e.Extract(m)
	if err != nil {
		return nil, err
	}
	return parseSessionDescription(body)
}

func parseSessionDescription(body ExtractedBody) (*sdp.SessionDescription, error) {
	if body.Type == ContentTrickleICE {
		return nil, newError(CodeSDPInvalid, "trickle-ice-sdpfrag body is not a session description")
	}

	sd := &sdp.SessionDescription{}
	if err := sd.Unmarshal(body.Body); err != nil {
		return nil, newError(CodeSDPInvalid, "failed to parse SDP").WithCause(err)
	}
	return sd, nil
}

// SDPIP возвращает адрес медиа.
//
// Сообщение обязано нести тело SDP, иначе ошибка извлечения возвращается
// даже при заданном переопределении. Порядок: значение из WithSDPIPSource,
// если оно не пустое; адрес c= уровня сессии; адрес c= первого
// медиа-потока. Если адреса нет нигде, возвращается пустая строка без ошибки.
func (e *Extractor) SDPIP(m *message.Message) (string, error) {
	body, err := e.Extract(m)
	if err != nil {
		return "", err
	}

	if e.sdpIP != nil {
		if ip, ok := e.sdpIP.Lookup(m); ok && ip != "" {
			e.log().Debug("SDP IP taken from override", slog.String("ip", ip))
			return ip, nil
		}
	}

	sd, err := parseSessionDescription(body)
	if err != nil {
		return "", err
	}

	if ip := connectionAddress(sd.ConnectionInformation); ip != "" {
		return ip, nil
	}
	if len(sd.MediaDescriptions) == 0 {
		e.log().Debug("SDP has no session address and no media stream")
		return "", nil
	}
	return connectionAddress(sd.MediaDescriptions[0].ConnectionInformation), nil
}

// SDPPort возвращает порт первого медиа-потока
func (e *Extractor) SDPPort(m *message.Message) (int, error) {
	sd, err := e.sessionDescription(m)
	if err != nil {
		return 0, err
	}
	if len(sd.MediaDescriptions) == 0 {
		return 0, newError(CodeSDPNoMedia, "can not get the sdp stream")
	}
	return sd.MediaDescriptions[0].MediaName.Port.Value, nil
}

func connectionAddress(ci *sdp.ConnectionInformation) string {
	if ci == nil || ci.Address == nil {
		return ""
	}
	return strings.TrimSpace(ci.Address.Address)
}
